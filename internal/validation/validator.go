package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
)

// Field length limits
const (
	MaxTitleLength   = 200
	MaxNameLength    = 100
	MaxSubjectLength = 200
	MaxMessageLength = 5000
	MaxTagLength     = 50
	MaxTags          = 20
	MaxURLLength     = 2048
)

var (
	colorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

	contentTypes       = keys(models.ValidContentTypes)
	publicationStatus  = keys(models.ValidStatuses)
	commentStatuses    = keys(models.ValidCommentStatuses)
	reviewStatuses     = keys(models.ValidReviewStatuses)
	contactStatuses    = keys(models.ValidContactStatuses)
	subscriberStatuses = keys(models.ValidSubscriberStatuses)
	authorRoles        = keys(models.ValidRoles)
)

// keys returns the map keys as plain strings, which is what request DTOs carry
func keys[K ~string](m map[K]bool) []interface{} {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, string(k))
	}
	sort.Strings(out)
	values := make([]interface{}, len(out))
	for i, v := range out {
		values[i] = v
	}
	return values
}

var tagRules = []validation.Rule{
	validation.Length(0, MaxTags),
	validation.Each(validation.Required, validation.RuneLength(1, MaxTagLength)),
}

func oneOf(values []interface{}) validation.Rule {
	return validation.In(values...).Error(fmt.Sprintf("must be one of: %v", values))
}

// ValidateContentInput validates a content create request
func ValidateContentInput(in *models.ContentInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.Type, validation.Required, oneOf(contentTypes)),
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.FeaturedImage, validation.Length(0, MaxURLLength)),
		validation.Field(&in.Status, oneOf(publicationStatus)),
	))
}

// ValidateContentPatch validates a partial content update
func ValidateContentPatch(p *models.ContentPatch) error {
	return check(validation.ValidateStruct(p,
		validation.Field(&p.Type, validation.NilOrNotEmpty, oneOf(contentTypes)),
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&p.Content, validation.NilOrNotEmpty),
		validation.Field(&p.FeaturedImage, validation.Length(0, MaxURLLength)),
		validation.Field(&p.Status, validation.NilOrNotEmpty, oneOf(publicationStatus)),
	))
}

// ValidateArticleInput validates an article create request
func ValidateArticleInput(in *models.ArticleInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Content, validation.Required),
		validation.Field(&in.FeaturedImage, validation.Length(0, MaxURLLength)),
		validation.Field(&in.AuthorID, is.UUID),
		validation.Field(&in.CategoryID, is.UUID),
		validation.Field(&in.Tags, tagRules...),
		validation.Field(&in.Status, oneOf(publicationStatus)),
		validation.Field(&in.SEOTitle, validation.RuneLength(0, MaxTitleLength)),
	))
}

// ValidateArticlePatch validates a partial article update
func ValidateArticlePatch(p *models.ArticlePatch) error {
	return check(validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.NilOrNotEmpty, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&p.Content, validation.NilOrNotEmpty),
		validation.Field(&p.FeaturedImage, validation.Length(0, MaxURLLength)),
		validation.Field(&p.AuthorID, is.UUID),
		validation.Field(&p.CategoryID, is.UUID),
		validation.Field(&p.Tags, validation.By(func(value interface{}) error {
			tags, _ := value.(*[]string)
			if tags == nil {
				return nil
			}
			return validation.Validate(*tags, tagRules...)
		})),
		validation.Field(&p.Status, validation.NilOrNotEmpty, oneOf(publicationStatus)),
		validation.Field(&p.SEOTitle, validation.RuneLength(0, MaxTitleLength)),
	))
}

// ValidateCommentInput validates a public comment submission
func ValidateCommentInput(in *models.CommentInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.AuthorName, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&in.AuthorEmail, is.EmailFormat),
		validation.Field(&in.Content, validation.Required, validation.RuneLength(1, models.MaxCommentLength)),
	))
}

// ValidateCommentModeration validates a comment status change
func ValidateCommentModeration(m *models.CommentModeration) error {
	return check(validation.ValidateStruct(m,
		validation.Field(&m.Status, validation.Required, oneOf(commentStatuses)),
	))
}

// ValidateReviewInput validates a public review submission
func ValidateReviewInput(in *models.ReviewInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&in.Content, validation.Required, validation.RuneLength(1, MaxMessageLength)),
		validation.Field(&in.Rating,
			validation.Required.Error(fmt.Sprintf("must be between %d and %d", models.MinRating, models.MaxRating)),
			validation.Min(models.MinRating), validation.Max(models.MaxRating)),
		validation.Field(&in.AuthorName, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.AuthorTitle, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&in.AuthorCompany, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&in.AuthorAvatarURL, validation.Length(0, MaxURLLength), is.URL),
	))
}

// ValidateReviewModeration validates an admin review update; at least one field must be set
func ValidateReviewModeration(m *models.ReviewModeration) error {
	if m.Status == nil && m.Featured == nil {
		return apperror.InvalidInput("validation failed", map[string]string{
			"status": "status or featured is required",
		})
	}
	return check(validation.ValidateStruct(m,
		validation.Field(&m.Status, validation.NilOrNotEmpty, oneOf(reviewStatuses)),
	))
}

// ValidateCategoryInput validates a category create or update
func ValidateCategoryInput(in *models.CategoryInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.Description, validation.RuneLength(0, MaxMessageLength)),
		validation.Field(&in.Color, validation.Match(colorRegex).Error("must be a hex colour such as #1e40af")),
	))
}

// ValidateSubscribeRequest validates a newsletter signup
func ValidateSubscribeRequest(req *models.SubscribeRequest) error {
	return check(validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Name, validation.RuneLength(0, MaxNameLength)),
		validation.Field(&req.Source, validation.RuneLength(0, MaxNameLength)),
	))
}

// ValidateUnsubscribeRequest validates a newsletter opt-out
func ValidateUnsubscribeRequest(req *models.UnsubscribeRequest) error {
	return check(validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
	))
}

// ValidateSubscriberStatus validates a subscriber status filter value
func ValidateSubscriberStatus(status string) error {
	return check(validation.Errors{
		"status": validation.Validate(status, oneOf(subscriberStatuses)),
	}.Filter())
}

// ValidateContactRequest validates a contact form submission
func ValidateContactRequest(req *models.ContactRequest) error {
	return check(validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Subject, validation.RuneLength(0, MaxSubjectLength)),
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, MaxMessageLength)),
	))
}

// ValidateContactStatusUpdate validates an admin contact status change
func ValidateContactStatusUpdate(u *models.ContactStatusUpdate) error {
	return check(validation.ValidateStruct(u,
		validation.Field(&u.Status, validation.Required, oneOf(contactStatuses)),
	))
}

// ValidateAuthorInput validates an author create request
func ValidateAuthorInput(in *models.AuthorInput) error {
	return check(validation.ValidateStruct(in,
		validation.Field(&in.Name, validation.Required, validation.RuneLength(1, MaxNameLength)),
		validation.Field(&in.Email, validation.Required, is.EmailFormat),
		validation.Field(&in.AvatarURL, validation.Length(0, MaxURLLength), is.URL),
		validation.Field(&in.Role, oneOf(authorRoles)),
	))
}

// check converts ozzo errors into an InvalidInput application error
func check(err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if errors.As(err, &ve) {
		return apperror.InvalidInput("validation failed", FieldErrors(ve))
	}
	return apperror.InvalidInput(err.Error(), nil)
}

// FieldErrors flattens ozzo errors into field -> message; nested keys are dot-joined
func FieldErrors(ve validation.Errors) map[string]string {
	fields := make(map[string]string, len(ve))
	flatten("", ve, fields)
	return fields
}

func flatten(prefix string, ve validation.Errors, out map[string]string) {
	for field, err := range ve {
		key := field
		if prefix != "" {
			key = prefix + "." + field
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(key, nested, out)
			continue
		}
		out[key] = err.Error()
	}
}

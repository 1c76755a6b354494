package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr), "expected *apperror.Error, got %v", err)
	assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
	return appErr.Fields
}

func strPtr(s string) *string { return &s }

func TestValidateContentInput(t *testing.T) {
	tests := []struct {
		name       string
		input      models.ContentInput
		wantFields []string
	}{
		{
			name:  "valid news item",
			input: models.ContentInput{Type: "news", Title: "Hello World!!", Content: "body", Status: "draft"},
		},
		{
			name:  "status may be omitted",
			input: models.ContentInput{Type: "tool", Title: "A tool", Content: "body"},
		},
		{
			name:       "missing type and title",
			input:      models.ContentInput{Content: "body"},
			wantFields: []string{"type", "title"},
		},
		{
			name:       "unknown type",
			input:      models.ContentInput{Type: "blog", Title: "x", Content: "body"},
			wantFields: []string{"type"},
		},
		{
			name:       "unknown status",
			input:      models.ContentInput{Type: "news", Title: "x", Content: "body", Status: "live"},
			wantFields: []string{"status"},
		},
		{
			name:       "missing body",
			input:      models.ContentInput{Type: "news", Title: "x"},
			wantFields: []string{"content"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContentInput(&tt.input)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			fields := fieldsOf(t, err)
			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestValidateContentPatch(t *testing.T) {
	assert.NoError(t, ValidateContentPatch(&models.ContentPatch{}))
	assert.NoError(t, ValidateContentPatch(&models.ContentPatch{Status: strPtr("archived")}))

	fields := fieldsOf(t, ValidateContentPatch(&models.ContentPatch{Title: strPtr("")}))
	assert.Contains(t, fields, "title")

	fields = fieldsOf(t, ValidateContentPatch(&models.ContentPatch{Status: strPtr("deleted")}))
	assert.Contains(t, fields, "status")

	// a body may be replaced but not blanked
	fields = fieldsOf(t, ValidateContentPatch(&models.ContentPatch{Content: strPtr("")}))
	assert.Contains(t, fields, "content")
	assert.NoError(t, ValidateContentPatch(&models.ContentPatch{Content: strPtr("new body")}))
}

func TestValidateArticleInput_Tags(t *testing.T) {
	valid := models.ArticleInput{Title: "Go", Content: "body", Tags: []string{"go", "backend"}}
	assert.NoError(t, ValidateArticleInput(&valid))

	invalid := models.ArticleInput{Title: "Go", Content: "body", Tags: []string{"go", ""}}
	fields := fieldsOf(t, ValidateArticleInput(&invalid))
	assert.Contains(t, fields, "tags.1")

	badRef := models.ArticleInput{Title: "Go", Content: "body", AuthorID: "not-a-uuid"}
	fields = fieldsOf(t, ValidateArticleInput(&badRef))
	assert.Contains(t, fields, "authorId")
}

func TestValidateArticlePatch_Tags(t *testing.T) {
	assert.NoError(t, ValidateArticlePatch(&models.ArticlePatch{}))

	tags := []string{strings.Repeat("x", MaxTagLength+1)}
	fields := fieldsOf(t, ValidateArticlePatch(&models.ArticlePatch{Tags: &tags}))
	assert.Contains(t, fields, "tags.0")
}

func TestValidateCommentInput(t *testing.T) {
	assert.NoError(t, ValidateCommentInput(&models.CommentInput{Content: "Nice post"}))

	fields := fieldsOf(t, ValidateCommentInput(&models.CommentInput{
		AuthorEmail: "nope",
		Content:     strings.Repeat("a", models.MaxCommentLength+1),
	}))
	assert.Contains(t, fields, "authorEmail")
	assert.Contains(t, fields, "content")
}

func TestValidateCommentModeration(t *testing.T) {
	for status := range models.ValidCommentStatuses {
		assert.NoError(t, ValidateCommentModeration(&models.CommentModeration{Status: string(status)}))
	}

	fields := fieldsOf(t, ValidateCommentModeration(&models.CommentModeration{}))
	assert.Contains(t, fields, "status")

	fields = fieldsOf(t, ValidateCommentModeration(&models.CommentModeration{Status: "deleted"}))
	assert.Contains(t, fields, "status")
}

func TestValidateReviewInput_Rating(t *testing.T) {
	base := models.ReviewInput{Title: "Great", Content: "Loved it", AuthorName: "Ada"}

	for rating := models.MinRating; rating <= models.MaxRating; rating++ {
		in := base
		in.Rating = rating
		assert.NoError(t, ValidateReviewInput(&in), "rating %d", rating)
	}

	for _, rating := range []int{0, 6, -1} {
		in := base
		in.Rating = rating
		fields := fieldsOf(t, ValidateReviewInput(&in))
		assert.Contains(t, fields, "rating", "rating %d", rating)
	}
}

func TestValidateReviewModeration(t *testing.T) {
	featured := true
	assert.NoError(t, ValidateReviewModeration(&models.ReviewModeration{Featured: &featured}))
	assert.NoError(t, ValidateReviewModeration(&models.ReviewModeration{Status: strPtr("approved")}))

	fields := fieldsOf(t, ValidateReviewModeration(&models.ReviewModeration{}))
	assert.Contains(t, fields, "status")

	fields = fieldsOf(t, ValidateReviewModeration(&models.ReviewModeration{Status: strPtr("spam")}))
	assert.Contains(t, fields, "status")
}

func TestValidateCategoryInput(t *testing.T) {
	assert.NoError(t, ValidateCategoryInput(&models.CategoryInput{Name: "AI", Color: "#1e40af"}))
	assert.NoError(t, ValidateCategoryInput(&models.CategoryInput{Name: "AI"}))

	fields := fieldsOf(t, ValidateCategoryInput(&models.CategoryInput{Color: "blue"}))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "color")
}

func TestValidateSubscribeRequest(t *testing.T) {
	assert.NoError(t, ValidateSubscribeRequest(&models.SubscribeRequest{Email: "reader@example.com"}))

	fields := fieldsOf(t, ValidateSubscribeRequest(&models.SubscribeRequest{Email: "reader"}))
	assert.Contains(t, fields, "email")

	fields = fieldsOf(t, ValidateSubscribeRequest(&models.SubscribeRequest{}))
	assert.Contains(t, fields, "email")
}

func TestValidateSubscriberStatus(t *testing.T) {
	assert.NoError(t, ValidateSubscriberStatus(""))
	assert.NoError(t, ValidateSubscriberStatus("active"))
	assert.NoError(t, ValidateSubscriberStatus("unsubscribed"))

	fields := fieldsOf(t, ValidateSubscriberStatus("inactive"))
	assert.Contains(t, fields, "status")
}

func TestValidateContactRequest(t *testing.T) {
	assert.NoError(t, ValidateContactRequest(&models.ContactRequest{
		Name: "Ada", Email: "ada@example.com", Message: "Hello",
	}))

	fields := fieldsOf(t, ValidateContactRequest(&models.ContactRequest{}))
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "message")
}

func TestValidateAuthorInput(t *testing.T) {
	assert.NoError(t, ValidateAuthorInput(&models.AuthorInput{Name: "Ada", Email: "ada@example.com", Role: "editor"}))

	fields := fieldsOf(t, ValidateAuthorInput(&models.AuthorInput{Name: "Ada", Email: "ada@example.com", Role: "viewer"}))
	assert.Contains(t, fields, "role")
}

func TestSanitizer(t *testing.T) {
	s := NewSanitizer()

	rich := s.Rich(`<p>Hello <a href="https://example.com">link</a></p><script>alert(1)</script>`)
	assert.Contains(t, rich, "<p>Hello")
	assert.Contains(t, rich, `rel="nofollow"`)
	assert.NotContains(t, rich, "<script>")

	assert.Equal(t, "Nice post", s.Plain("  <b>Nice</b> post<script>x</script> "))
}

package service

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/validation"
)

// ContentService defines the publication workflow for generic content items
type ContentService interface {
	Create(ctx context.Context, in *models.ContentInput) (*models.Content, error)
	Update(ctx context.Context, id string, patch *models.ContentPatch) (*models.Content, error)
	Delete(ctx context.Context, id string) (*models.Content, error)
	ChangeStatus(ctx context.Context, id, action string) (*models.Content, error)
	Get(ctx context.Context, idOrSlug string) (*models.Content, error)
	GetPublished(ctx context.Context, idOrSlug string) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter) (*models.Page[models.Content], error)
	ListPublished(ctx context.Context, filter models.ContentFilter) (*models.Page[models.Content], error)
}

// ArticleQuery is a listing request for the news section
type ArticleQuery struct {
	Category string
	Search   string
	Status   *models.PublicationStatus
	Page     int
	PageSize int
}

// ArticleService defines article authoring and the public news listing
type ArticleService interface {
	Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error)
	Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error)
	Delete(ctx context.Context, id string) error
	ChangeStatus(ctx context.Context, id, action string) (*models.Article, error)
	Get(ctx context.Context, idOrSlug string) (*models.Article, error)
	GetPublished(ctx context.Context, idOrSlug string) (*models.Article, error)
	List(ctx context.Context, q ArticleQuery) (*models.Page[models.Article], error)
	ListPublished(ctx context.Context, q ArticleQuery) (*models.Page[models.Article], error)
}

// ModerationService defines submission and moderation of comments and reviews
type ModerationService interface {
	SubmitComment(ctx context.Context, articleID string, in *models.CommentInput) (*models.Comment, error)
	ApprovedComments(ctx context.Context, articleID string, limit, offset int) (*models.Page[models.Comment], error)
	ListComments(ctx context.Context, articleID, status string, limit, offset int) (*models.Page[models.Comment], error)
	ModerateComment(ctx context.Context, id string, m *models.CommentModeration) (*models.Comment, error)
	DeleteComment(ctx context.Context, id string) error

	SubmitReview(ctx context.Context, in *models.ReviewInput) (*models.Review, error)
	PublicReviews(ctx context.Context, featured *bool, limit, offset int) (*models.Page[models.Review], error)
	ListReviews(ctx context.Context, status string, limit, offset int) (*models.Page[models.Review], error)
	ModerateReview(ctx context.Context, id string, m *models.ReviewModeration) (*models.Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// CategoryService defines category management
type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error)
	Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, id string) error
}

// NewsletterService defines newsletter subscription management
type NewsletterService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error)
	Unsubscribe(ctx context.Context, req *models.UnsubscribeRequest) (*models.Subscriber, error)
	List(ctx context.Context, status string, limit, offset int) (*models.Page[models.Subscriber], error)
}

// ContactService defines contact-form intake
type ContactService interface {
	Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error)
	List(ctx context.Context, status string, limit, offset int) (*models.Page[models.ContactMessage], error)
	UpdateStatus(ctx context.Context, id string, u *models.ContactStatusUpdate) (*models.ContactMessage, error)
}

// AuthorService defines author management
type AuthorService interface {
	List(ctx context.Context) ([]*models.Author, error)
	Create(ctx context.Context, in *models.AuthorInput) (*models.Author, error)
}

// ViewService counts article views off the request path
type ViewService interface {
	Enqueue(articleID string) bool
	Start(ctx context.Context)
	Stop()
}

// ExportService defines streaming exports for the admin dashboard
type ExportService interface {
	Validate(resource, format string) error
	Stream(ctx context.Context, w http.ResponseWriter, resource, format string) error
}

// StatsService defines the admin dashboard counters
type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// Deps holds the external collaborators shared by services
type Deps struct {
	Cache cache.Cache
	Email email.Sender
}

// Services holds all service interfaces
type Services struct {
	Content    ContentService
	Article    ArticleService
	Moderation ModerationService
	Category   CategoryService
	Newsletter NewsletterService
	Contact    ContactService
	Author     AuthorService
	View       ViewService
	Export     ExportService
	Stats      StatsService

	// ReadOnly is set when no persistent store is configured; only the
	// public article surface is available.
	ReadOnly bool
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, cfg *config.Config, deps Deps, log zerolog.Logger) *Services {
	deps = deps.withDefaults(log)
	sanitizer := validation.NewSanitizer()
	listings := newListingCache(deps.Cache, log)

	return &Services{
		Content:    newContentService(repos.Content, sanitizer, listings, log),
		Article:    newArticleService(repos, sanitizer, listings, log),
		Moderation: newModerationService(repos, sanitizer, listings, log),
		Category:   newCategoryService(repos.Category, listings, log),
		Newsletter: newNewsletterService(repos.Subscriber, deps.Email, &cfg.Email, log),
		Contact:    newContactService(repos.Contact, deps.Email, sanitizer, &cfg.Email, log),
		Author:     newAuthorService(repos.Author, sanitizer, log),
		View:       newViewService(repos.Article, &cfg.Views, log),
		Export:     newExportService(repos, log),
		Stats:      newStatsService(repos, log),
	}
}

// NewReadOnlyServices creates the article services over the placeholder
// catalogue, used when persistence is unconfigured
func NewReadOnlyServices(cfg *config.Config, deps Deps, log zerolog.Logger) *Services {
	deps = deps.withDefaults(log)
	articles := repository.NewPlaceholderArticleRepo()
	repos := &repository.Repositories{Article: articles}

	log.Warn().Msg("No database configured, serving placeholder articles in read-only mode")

	return &Services{
		Article:  newArticleService(repos, validation.NewSanitizer(), newListingCache(deps.Cache, log), log),
		View:     newViewService(articles, &cfg.Views, log),
		ReadOnly: true,
	}
}

func (d Deps) withDefaults(log zerolog.Logger) Deps {
	if d.Cache == nil {
		d.Cache = cache.Nop{}
	}
	if d.Email == nil {
		d.Email = email.NewNopSender(log)
	}
	return d
}

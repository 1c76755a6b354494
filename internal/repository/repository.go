package repository

import (
	"context"
	"time"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

// ContentRepository defines the interface for content data operations
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Content, error)
	GetBySlug(ctx context.Context, slug string, contentType *models.ContentType) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, int, error)
	SlugExists(ctx context.Context, contentType models.ContentType, slug, excludeID string) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error)
	IncrementViews(ctx context.Context, id string) error
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	CountByStatus(ctx context.Context) (map[models.PublicationStatus]int, error)
	StreamAll(ctx context.Context, callback func(*models.Article) error) error
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	UpdateStatus(ctx context.Context, id string, status models.CommentStatus, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error)
	CountByStatus(ctx context.Context, status models.CommentStatus) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Comment) error) error
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, int, error)
	CountByStatus(ctx context.Context, status models.ReviewStatus) (int, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
}

// SubscriberRepository defines the interface for newsletter subscriber operations
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	Update(ctx context.Context, subscriber *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	List(ctx context.Context, filter models.SubscriberFilter) ([]*models.Subscriber, int, error)
	CountByStatus(ctx context.Context, status models.SubscriberStatus) (int, error)
	StreamAll(ctx context.Context, callback func(*models.Subscriber) error) error
}

// ContactRepository defines the interface for contact-form message operations
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id string, status models.ContactStatus, updatedAt time.Time) error
	List(ctx context.Context, filter models.ContactFilter) ([]*models.ContactMessage, int, error)
	CountByStatus(ctx context.Context, status models.ContactStatus) (int, error)
}

// AuthorRepository defines the interface for author data operations
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	GetByID(ctx context.Context, id string) (*models.Author, error)
	List(ctx context.Context) ([]*models.Author, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content    ContentRepository
	Article    ArticleRepository
	Comment    CommentRepository
	Review     ReviewRepository
	Category   CategoryRepository
	Subscriber SubscriberRepository
	Contact    ContactRepository
	Author     AuthorRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Content:    NewContentRepo(db),
		Article:    NewArticleRepo(db),
		Comment:    NewCommentRepo(db),
		Review:     NewReviewRepo(db),
		Category:   NewCategoryRepo(db),
		Subscriber: NewSubscriberRepo(db),
		Contact:    NewContactRepo(db),
		Author:     NewAuthorRepo(db),
	}
}

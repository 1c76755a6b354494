package models

import (
	"time"
)

// ContentType enumerates the publishable unit kinds
type ContentType string

const (
	ContentTypeNews     ContentType = "news"
	ContentTypeTutorial ContentType = "tutorial"
	ContentTypeTool     ContentType = "tool"
	ContentTypeService  ContentType = "service"
	ContentTypePodcast  ContentType = "podcast"
	ContentTypeEvent    ContentType = "event"
)

// ValidContentTypes defines allowed content types
var ValidContentTypes = map[ContentType]bool{
	ContentTypeNews:     true,
	ContentTypeTutorial: true,
	ContentTypeTool:     true,
	ContentTypeService:  true,
	ContentTypePodcast:  true,
	ContentTypeEvent:    true,
}

// PublicationStatus is the draft/published/archived lifecycle shared by content and articles
type PublicationStatus string

const (
	StatusDraft     PublicationStatus = "draft"
	StatusPublished PublicationStatus = "published"
	StatusArchived  PublicationStatus = "archived"
)

// ValidStatuses defines allowed publication statuses
var ValidStatuses = map[PublicationStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusArchived:  true,
}

// StatusActions maps the PATCH action vocabulary onto target statuses
var StatusActions = map[string]PublicationStatus{
	"publish":   StatusPublished,
	"unpublish": StatusDraft,
	"archive":   StatusArchived,
}

// Content represents any publishable unit (article, tutorial, tool, service, podcast, event)
type Content struct {
	ID            string                 `json:"id" db:"id"`
	Type          ContentType            `json:"type" db:"type"`
	Title         string                 `json:"title" db:"title"`
	Slug          string                 `json:"slug" db:"slug"`
	Description   string                 `json:"description" db:"description"`
	Body          string                 `json:"content" db:"body"`
	FeaturedImage string                 `json:"featured_image,omitempty" db:"featured_image"`
	Status        PublicationStatus      `json:"status" db:"status"`
	IsFeatured    bool                   `json:"is_featured" db:"is_featured"`
	ReadingTime   int                    `json:"reading_time" db:"reading_time"`
	Metadata      map[string]interface{} `json:"metadata" db:"-"` // Stored as JSONB
	CreatedAt     time.Time              `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at" db:"updated_at"`
	PublishedAt   *time.Time             `json:"published_at" db:"published_at"`
}

// ContentFilter narrows a content listing. Nil fields are not filtered on.
type ContentFilter struct {
	Type       *ContentType
	Status     *PublicationStatus
	IsFeatured *bool
	Limit      int
	Offset     int
}

// ContentInput is the create request for content
type ContentInput struct {
	Type          string                 `json:"type"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Content       string                 `json:"content"`
	FeaturedImage string                 `json:"featuredImage"`
	Status        string                 `json:"status"`
	IsFeatured    bool                   `json:"isFeatured"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// ContentPatch is a partial update; nil fields are left untouched
type ContentPatch struct {
	Type          *string                 `json:"type"`
	Title         *string                 `json:"title"`
	Description   *string                 `json:"description"`
	Content       *string                 `json:"content"`
	FeaturedImage *string                 `json:"featuredImage"`
	Status        *string                 `json:"status"`
	IsFeatured    *bool                   `json:"isFeatured"`
	Metadata      *map[string]interface{} `json:"metadata"`
}

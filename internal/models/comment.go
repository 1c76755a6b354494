package models

import (
	"time"
)

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentRejected CommentStatus = "rejected"
	CommentSpam     CommentStatus = "spam"
)

// ValidCommentStatuses defines allowed comment statuses
var ValidCommentStatuses = map[CommentStatus]bool{
	CommentPending:  true,
	CommentApproved: true,
	CommentRejected: true,
	CommentSpam:     true,
}

// Comment represents a reader comment on an article
type Comment struct {
	ID          string        `json:"id" db:"id"`
	ArticleID   string        `json:"article_id" db:"article_id"`
	AuthorName  string        `json:"author_name,omitempty" db:"author_name"`
	AuthorEmail string        `json:"author_email,omitempty" db:"author_email"`
	Content     string        `json:"content" db:"content"`
	Status      CommentStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// Public reports whether the comment may render on public pages
func (c *Comment) Public() bool {
	return c.Status == CommentApproved
}

// CommentFilter narrows a comment listing
type CommentFilter struct {
	ArticleID string
	Status    *CommentStatus
	Limit     int
	Offset    int
}

// CommentInput is a public comment submission
type CommentInput struct {
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
}

// MaxCommentLength is the maximum allowed characters in a comment body
const MaxCommentLength = 2000

// CommentModeration is the admin status update for a comment
type CommentModeration struct {
	Status string `json:"status"`
}

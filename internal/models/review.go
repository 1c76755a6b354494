package models

import (
	"time"
)

// ReviewStatus is the moderation state of a review
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// ValidReviewStatuses defines allowed review statuses
var ValidReviewStatuses = map[ReviewStatus]bool{
	ReviewPending:  true,
	ReviewApproved: true,
	ReviewRejected: true,
}

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents a customer testimonial
type Review struct {
	ID              string       `json:"id" db:"id"`
	Title           string       `json:"title" db:"title"`
	Content         string       `json:"content" db:"content"`
	Rating          int          `json:"rating" db:"rating"`
	Status          ReviewStatus `json:"status" db:"status"`
	AuthorName      string       `json:"author_name" db:"author_name"`
	AuthorTitle     string       `json:"author_title,omitempty" db:"author_title"`
	AuthorCompany   string       `json:"author_company,omitempty" db:"author_company"`
	AuthorAvatarURL string       `json:"author_avatar_url,omitempty" db:"author_avatar_url"`
	Featured        bool         `json:"featured" db:"featured"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" db:"updated_at"`
}

// Public reports whether the review may be surfaced on public pages
func (r *Review) Public() bool {
	return r.Status == ReviewApproved
}

// ReviewFilter narrows a review listing
type ReviewFilter struct {
	Status   *ReviewStatus
	Featured *bool
	Limit    int
	Offset   int
}

// ReviewInput is a public review submission
type ReviewInput struct {
	Title           string `json:"title"`
	Content         string `json:"content"`
	Rating          int    `json:"rating"`
	AuthorName      string `json:"authorName"`
	AuthorTitle     string `json:"authorTitle"`
	AuthorCompany   string `json:"authorCompany"`
	AuthorAvatarURL string `json:"authorAvatarUrl"`
}

// ReviewModeration is an admin update; status and featured are both optional
type ReviewModeration struct {
	Status   *string `json:"status"`
	Featured *bool   `json:"featured"`
}

package models

import (
	"math"
	"sort"
	"strings"
	"time"
)

// WordsPerMinute is the reading speed used for reading_time
const WordsPerMinute = 200

// Article represents a news article
type Article struct {
	ID             string            `json:"id" db:"id"`
	Title          string            `json:"title" db:"title"`
	Slug           string            `json:"slug" db:"slug"`
	Excerpt        string            `json:"excerpt" db:"excerpt"`
	Content        string            `json:"content" db:"content"`
	FeaturedImage  string            `json:"featured_image,omitempty" db:"featured_image"`
	AuthorID       *string           `json:"author_id" db:"author_id"`
	CategoryID     *string           `json:"category_id" db:"category_id"`
	CategorySlug   string            `json:"category_slug,omitempty" db:"-"` // Joined from categories
	Tags           []string          `json:"tags" db:"-"`                    // Stored as JSONB
	Status         PublicationStatus `json:"status" db:"status"`
	IsFeatured     bool              `json:"is_featured" db:"is_featured"`
	ReadingTime    int               `json:"reading_time" db:"reading_time"`
	Views          int64             `json:"views" db:"views"`
	SEOTitle       string            `json:"seo_title,omitempty" db:"seo_title"`
	SEODescription string            `json:"seo_description,omitempty" db:"seo_description"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
	PublishedAt    *time.Time        `json:"published_at" db:"published_at"`
}

// SortTime is the listing order key: published_at, falling back to created_at
func (a *Article) SortTime() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

// AllCategories is the category sentinel meaning "no category filter"
const AllCategories = "all"

// ArticleFilter narrows an article listing
type ArticleFilter struct {
	CategorySlug string
	Status       *PublicationStatus
	Search       string
	Limit        int
	Offset       int
}

// ArticleInput is the create request for an article
type ArticleInput struct {
	Title          string   `json:"title"`
	Excerpt        string   `json:"excerpt"`
	Content        string   `json:"content"`
	FeaturedImage  string   `json:"featuredImage"`
	AuthorID       string   `json:"authorId"`
	CategoryID     string   `json:"categoryId"`
	Tags           []string `json:"tags"`
	Status         string   `json:"status"`
	IsFeatured     bool     `json:"isFeatured"`
	SEOTitle       string   `json:"seoTitle"`
	SEODescription string   `json:"seoDescription"`
}

// ArticlePatch is a partial update; nil fields are left untouched
type ArticlePatch struct {
	Title          *string   `json:"title"`
	Excerpt        *string   `json:"excerpt"`
	Content        *string   `json:"content"`
	FeaturedImage  *string   `json:"featuredImage"`
	AuthorID       *string   `json:"authorId"`
	CategoryID     *string   `json:"categoryId"`
	Tags           *[]string `json:"tags"`
	Status         *string   `json:"status"`
	IsFeatured     *bool     `json:"isFeatured"`
	SEOTitle       *string   `json:"seoTitle"`
	SEODescription *string   `json:"seoDescription"`
}

// ReadingTime returns ceil(words/WordsPerMinute) with a floor of one minute
func ReadingTime(text string) int {
	words := len(strings.Fields(text))
	minutes := int(math.Ceil(float64(words) / WordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Matches reports whether term hits the title, excerpt or body as a
// case-insensitive substring, or equals one of the tags ignoring case.
// A blank term matches everything.
func (a *Article) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(a.Title), term) ||
		strings.Contains(strings.ToLower(a.Excerpt), term) ||
		strings.Contains(strings.ToLower(a.Content), term) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.ToLower(tag) == term {
			return true
		}
	}
	return false
}

// SortArticles orders articles most recently published first, ties broken by id
func SortArticles(articles []*Article) {
	sort.Slice(articles, func(i, j int) bool {
		ti, tj := articles[i].SortTime(), articles[j].SortTime()
		if ti.Equal(tj) {
			return articles[i].ID < articles[j].ID
		}
		return ti.After(tj)
	})
}

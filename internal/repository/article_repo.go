package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const articleColumns = `a.id, a.title, a.slug, a.excerpt, a.content, a.featured_image, a.author_id, a.category_id,
	COALESCE(c.slug, ''), a.tags, a.status, a.is_featured, a.reading_time, a.views, a.seo_title, a.seo_description,
	a.created_at, a.updated_at, a.published_at`

const articleFrom = ` FROM articles a LEFT JOIN categories c ON c.id = a.category_id`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	tagsJSON := marshalTags(a.Tags)

	query := `
		INSERT INTO articles (id, title, slug, excerpt, content, featured_image, author_id, category_id, tags,
			status, is_featured, reading_time, views, seo_title, seo_description, created_at, updated_at, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Content, a.FeaturedImage,
		nullString(a.AuthorID), nullString(a.CategoryID), tagsJSON,
		a.Status, a.IsFeatured, a.ReadingTime, a.Views, a.SEOTitle, a.SEODescription,
		a.CreatedAt, a.UpdatedAt, a.PublishedAt,
	)
	return translate(err)
}

// Update writes every editable column; views are owned by IncrementViews
func (r *articleRepo) Update(ctx context.Context, a *models.Article) error {
	query := `
		UPDATE articles SET title = $2, slug = $3, excerpt = $4, content = $5, featured_image = $6,
			author_id = $7, category_id = $8, tags = $9, status = $10, is_featured = $11,
			reading_time = $12, seo_title = $13, seo_description = $14, updated_at = $15, published_at = $16
		WHERE id = $1
	`
	return affectedOne(r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Slug, a.Excerpt, a.Content, a.FeaturedImage,
		nullString(a.AuthorID), nullString(a.CategoryID), marshalTags(a.Tags),
		a.Status, a.IsFeatured, a.ReadingTime, a.SEOTitle, a.SEODescription,
		a.UpdatedAt, a.PublishedAt,
	))
}

// Delete removes an article; its comments go with it through ON DELETE CASCADE
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id))
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+articleFrom+" WHERE a.id = $1", id)
	return scanArticleRow(row)
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+articleColumns+articleFrom+" WHERE a.slug = $1", slug)
	return scanArticleRow(row)
}

// List returns one page of articles, most recently published first, and the full filtered count.
// Search matches title, excerpt and content case-insensitively, or any tag exactly ignoring case.
func (r *articleRepo) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("a.status = ?", *filter.Status)
	}
	if filter.CategorySlug != "" && filter.CategorySlug != models.AllCategories {
		w.add("c.slug = ?", filter.CategorySlug)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		w.add(`(a.title ILIKE ? OR a.excerpt ILIKE ? OR a.content ILIKE ?
			OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(a.tags) t WHERE lower(t) = lower(?)))`,
			likePattern(term), likePattern(term), likePattern(term), term)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+articleFrom+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+articleColumns+articleFrom+w.String()+
			" ORDER BY COALESCE(a.published_at, a.created_at) DESC, a.id"+limit,
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	articles := make([]*models.Article, 0, filter.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		articles = append(articles, a)
	}
	return articles, total, rows.Err()
}

// IncrementViews bumps the view counter in a single statement
func (r *articleRepo) IncrementViews(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "UPDATE articles SET views = views + 1 WHERE id = $1", id))
}

// SlugExists checks if another article already uses slug
func (r *articleRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1 AND id::text <> $2)", slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// CountByStatus returns the number of articles per publication status
func (r *articleRepo) CountByStatus(ctx context.Context) (map[models.PublicationStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM articles GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.PublicationStatus]int, len(models.ValidStatuses))
	for status := range models.ValidStatuses {
		counts[status] = 0
	}
	for rows.Next() {
		var status models.PublicationStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// StreamAll streams all articles for export
func (r *articleRepo) StreamAll(ctx context.Context, callback func(*models.Article) error) error {
	rows, err := r.db.QueryContext(ctx, "SELECT "+articleColumns+articleFrom+" ORDER BY a.created_at")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return err
		}
		if err := callback(article); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanArticleRow(row *sql.Row) (*models.Article, error) {
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return a, err
}

func scanArticle(s scanner) (*models.Article, error) {
	var a models.Article
	var tagsJSON []byte
	var authorID, categoryID sql.NullString
	var publishedAt sql.NullTime

	err := s.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.FeaturedImage, &authorID, &categoryID,
		&a.CategorySlug, &tagsJSON, &a.Status, &a.IsFeatured, &a.ReadingTime, &a.Views,
		&a.SEOTitle, &a.SEODescription, &a.CreatedAt, &a.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(tagsJSON, &a.Tags); err != nil {
		return nil, err
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if authorID.Valid {
		a.AuthorID = &authorID.String
	}
	if categoryID.Valid {
		a.CategoryID = &categoryID.String
	}
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}
	return &a, nil
}

func marshalTags(tags []string) string {
	if tags == nil {
		return "[]"
	}
	tagsJSON, _ := json.Marshal(tags)
	return string(tagsJSON)
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const contentColumns = `id, type, title, slug, description, body, featured_image, status, is_featured, reading_time, metadata, created_at, updated_at, published_at`

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

// Create inserts a new content item
func (r *contentRepo) Create(ctx context.Context, c *models.Content) error {
	metadata, err := marshalMetadata(c.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO content (` + contentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.Type, c.Title, c.Slug, c.Description, c.Body, c.FeaturedImage,
		c.Status, c.IsFeatured, c.ReadingTime, metadata, c.CreatedAt, c.UpdatedAt, c.PublishedAt,
	)
	return translate(err)
}

// Update writes every mutable column of an existing content item
func (r *contentRepo) Update(ctx context.Context, c *models.Content) error {
	metadata, err := marshalMetadata(c.Metadata)
	if err != nil {
		return err
	}

	query := `
		UPDATE content SET type = $2, title = $3, slug = $4, description = $5, body = $6,
			featured_image = $7, status = $8, is_featured = $9, reading_time = $10, metadata = $11,
			updated_at = $12, published_at = $13
		WHERE id = $1
	`
	return affectedOne(r.db.ExecContext(ctx, query,
		c.ID, c.Type, c.Title, c.Slug, c.Description, c.Body, c.FeaturedImage,
		c.Status, c.IsFeatured, c.ReadingTime, metadata, c.UpdatedAt, c.PublishedAt,
	))
}

// Delete removes a content item
func (r *contentRepo) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "DELETE FROM content WHERE id = $1", id))
}

// GetByID retrieves a content item by ID
func (r *contentRepo) GetByID(ctx context.Context, id string) (*models.Content, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM content WHERE id = $1", id)
	return scanContentRow(row)
}

// GetBySlug retrieves the newest content item with the given slug, optionally scoped to a type
func (r *contentRepo) GetBySlug(ctx context.Context, slug string, contentType *models.ContentType) (*models.Content, error) {
	w := &where{}
	w.add("slug = ?", slug)
	if contentType != nil {
		w.add("type = ?", *contentType)
	}
	row := r.db.QueryRowContext(ctx,
		"SELECT "+contentColumns+" FROM content"+w.String()+" ORDER BY created_at DESC LIMIT 1",
		w.args...,
	)
	return scanContentRow(row)
}

// List returns one page of content matching filter and the full filtered count
func (r *contentRepo) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, int, error) {
	w := &where{}
	if filter.Type != nil {
		w.add("type = ?", *filter.Type)
	}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	if filter.IsFeatured != nil {
		w.add("is_featured = ?", *filter.IsFeatured)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contentColumns+" FROM content"+w.String()+" ORDER BY created_at DESC, id"+limit,
		args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*models.Content, 0, filter.Limit)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

// SlugExists checks whether another item of the same type already uses slug
func (r *contentRepo) SlugExists(ctx context.Context, contentType models.ContentType, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM content WHERE type = $1 AND slug = $2 AND id::text <> $3)",
		contentType, slug, excludeID,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of content items
func (r *contentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM content").Scan(&count)
	return count, err
}

func scanContentRow(row *sql.Row) (*models.Content, error) {
	c, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func scanContent(s scanner) (*models.Content, error) {
	var c models.Content
	var metadata []byte
	var publishedAt sql.NullTime

	err := s.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Description, &c.Body, &c.FeaturedImage,
		&c.Status, &c.IsFeatured, &c.ReadingTime, &metadata, &c.CreatedAt, &c.UpdatedAt, &publishedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
		return nil, err
	}
	if c.Metadata == nil {
		c.Metadata = map[string]interface{}{}
	}
	if publishedAt.Valid {
		c.PublishedAt = &publishedAt.Time
	}
	return &c, nil
}

func marshalMetadata(m map[string]interface{}) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

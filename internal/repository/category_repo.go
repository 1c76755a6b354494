package repository

import (
	"context"
	"database/sql"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const categoryColumns = `id, name, slug, description, color, created_at`

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO categories ("+categoryColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		category.ID, category.Name, category.Slug, category.Description, category.Color, category.CreatedAt,
	)
	return translate(err)
}

// Update renames or recolours a category
func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	return affectedOne(r.db.ExecContext(ctx,
		"UPDATE categories SET name = $2, slug = $3, description = $4, color = $5 WHERE id = $1",
		category.ID, category.Name, category.Slug, category.Description, category.Color,
	))
}

// Delete removes a category; articles keep existing with no category
func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id))
}

// GetByID retrieves a category by ID
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return scanCategoryRow(r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE id = $1", id))
}

// GetBySlug retrieves a category by slug
func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return scanCategoryRow(r.db.QueryRowContext(ctx, "SELECT "+categoryColumns+" FROM categories WHERE slug = $1", slug))
}

// List returns every category ordered by name
func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+categoryColumns+" FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []*models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// SlugExists checks if another category already uses slug
func (r *categoryRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM categories WHERE slug = $1 AND id::text <> $2)", slug, excludeID,
	).Scan(&exists)
	return exists, err
}

func scanCategoryRow(row *sql.Row) (*models.Category, error) {
	category, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return category, err
}

func scanCategory(s scanner) (*models.Category, error) {
	var category models.Category
	err := s.Scan(&category.ID, &category.Name, &category.Slug, &category.Description, &category.Color, &category.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const reviewColumns = `id, title, content, rating, status, author_name, author_title, author_company,
	author_avatar_url, featured, created_at, updated_at`

// reviewRepo is the concrete implementation of ReviewRepository
type reviewRepo struct {
	db *database.DB
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(db *database.DB) ReviewRepository {
	return &reviewRepo{db: db}
}

// Create inserts a new review
func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID, review.Title, review.Content, review.Rating, review.Status,
		review.AuthorName, review.AuthorTitle, review.AuthorCompany, review.AuthorAvatarURL,
		review.Featured, review.CreatedAt, review.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves a review by ID
func (r *reviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	review, err := scanReview(r.db.QueryRowContext(ctx, "SELECT "+reviewColumns+" FROM reviews WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return review, err
}

// Update persists the moderation fields of a review
func (r *reviewRepo) Update(ctx context.Context, review *models.Review) error {
	return affectedOne(r.db.ExecContext(ctx,
		"UPDATE reviews SET status = $2, featured = $3, updated_at = $4 WHERE id = $1",
		review.ID, review.Status, review.Featured, review.UpdatedAt,
	))
}

// Delete removes a review
func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "DELETE FROM reviews WHERE id = $1", id))
}

// List returns one page of reviews, featured first then newest, and the full filtered count
func (r *reviewRepo) List(ctx context.Context, filter models.ReviewFilter) ([]*models.Review, int, error) {
	w := &where{}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}
	if filter.Featured != nil {
		w.add("featured = ?", *filter.Featured)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reviewColumns+" FROM reviews"+w.String()+" ORDER BY featured DESC, created_at DESC, id"+limit, args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := make([]*models.Review, 0, filter.Limit)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, review)
	}
	return reviews, total, rows.Err()
}

// CountByStatus returns the number of reviews in status
func (r *reviewRepo) CountByStatus(ctx context.Context, status models.ReviewStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews WHERE status = $1", status).Scan(&count)
	return count, err
}

func scanReview(s scanner) (*models.Review, error) {
	var review models.Review
	err := s.Scan(
		&review.ID, &review.Title, &review.Content, &review.Rating, &review.Status,
		&review.AuthorName, &review.AuthorTitle, &review.AuthorCompany, &review.AuthorAvatarURL,
		&review.Featured, &review.CreatedAt, &review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

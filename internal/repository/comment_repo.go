package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

const commentColumns = `id, article_id, author_name, author_email, content, status, created_at, updated_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (` + commentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.ArticleID, comment.AuthorName, comment.AuthorEmail, comment.Content,
		comment.Status, comment.CreatedAt, comment.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx, "SELECT "+commentColumns+" FROM comments WHERE id = $1", id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return comment, err
}

// UpdateStatus sets the moderation status of a comment
func (r *commentRepo) UpdateStatus(ctx context.Context, id string, status models.CommentStatus, updatedAt time.Time) error {
	return affectedOne(r.db.ExecContext(ctx,
		"UPDATE comments SET status = $2, updated_at = $3 WHERE id = $1", id, status, updatedAt,
	))
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) error {
	return affectedOne(r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id))
}

// List returns one page of comments, newest first, and the full filtered count
func (r *commentRepo) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	w := &where{}
	if filter.ArticleID != "" {
		w.add("article_id = ?", filter.ArticleID)
	}
	if filter.Status != nil {
		w.add("status = ?", *filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments"+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit, args := w.page(filter.Limit, filter.Offset)
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+commentColumns+" FROM comments"+w.String()+" ORDER BY created_at DESC, id"+limit, args...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0, filter.Limit)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, comment)
	}
	return comments, total, rows.Err()
}

// CountByStatus returns the number of comments in status
func (r *commentRepo) CountByStatus(ctx context.Context, status models.CommentStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments WHERE status = $1", status).Scan(&count)
	return count, err
}

// StreamAll streams all comments for export
func (r *commentRepo) StreamAll(ctx context.Context, callback func(*models.Comment) error) error {
	rows, err := r.db.QueryContext(ctx, "SELECT "+commentColumns+" FROM comments ORDER BY created_at")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return err
		}
		if err := callback(comment); err != nil {
			return err
		}
	}

	return rows.Err()
}

func scanComment(s scanner) (*models.Comment, error) {
	var comment models.Comment
	err := s.Scan(
		&comment.ID, &comment.ArticleID, &comment.AuthorName, &comment.AuthorEmail, &comment.Content,
		&comment.Status, &comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

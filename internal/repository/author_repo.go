package repository

import (
	"context"
	"database/sql"

	"github.com/tech-hub-api/internal/database"
	"github.com/tech-hub-api/internal/models"
)

// authorRepo is the concrete implementation of AuthorRepository
type authorRepo struct {
	db *database.DB
}

// NewAuthorRepo creates a new author repository
func NewAuthorRepo(db *database.DB) AuthorRepository {
	return &authorRepo{db: db}
}

// Create inserts a new author; emails are unique ignoring case
func (r *authorRepo) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO authors (id, name, email, bio, avatar_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		author.ID, author.Name, author.Email, author.Bio, author.AvatarURL, author.Role,
		author.CreatedAt, author.UpdatedAt,
	)
	return translate(err)
}

// GetByID retrieves an author by ID
func (r *authorRepo) GetByID(ctx context.Context, id string) (*models.Author, error) {
	query := `SELECT id, name, email, bio, avatar_url, role, created_at, updated_at FROM authors WHERE id = $1`

	var author models.Author
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&author.ID, &author.Name, &author.Email, &author.Bio, &author.AvatarURL, &author.Role,
		&author.CreatedAt, &author.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &author, nil
}

// List returns all authors ordered by name
func (r *authorRepo) List(ctx context.Context) ([]*models.Author, error) {
	query := `SELECT id, name, email, bio, avatar_url, role, created_at, updated_at FROM authors ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	authors := []*models.Author{}
	for rows.Next() {
		var author models.Author
		err := rows.Scan(
			&author.ID, &author.Name, &author.Email, &author.Bio, &author.AvatarURL, &author.Role,
			&author.CreatedAt, &author.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}

	return authors, rows.Err()
}

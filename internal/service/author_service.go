package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/validation"
)

const defaultAuthorRole = "writer"

// authorService is the concrete implementation of AuthorService
type authorService struct {
	repo      repository.AuthorRepository
	sanitizer *validation.Sanitizer
	log       zerolog.Logger
}

func newAuthorService(repo repository.AuthorRepository, sanitizer *validation.Sanitizer, log zerolog.Logger) *authorService {
	return &authorService{
		repo:      repo,
		sanitizer: sanitizer,
		log:       log.With().Str("service", "author").Logger(),
	}
}

// List returns every author ordered by name
func (s *authorService) List(ctx context.Context) ([]*models.Author, error) {
	authors, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "author", "list authors", err)
	}
	if authors == nil {
		authors = []*models.Author{}
	}
	return authors, nil
}

// Create stores a new author; emails are unique ignoring case
func (s *authorService) Create(ctx context.Context, in *models.AuthorInput) (*models.Author, error) {
	if err := validation.ValidateAuthorInput(in); err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = defaultAuthorRole
	}
	now := time.Now().UTC()
	author := &models.Author{
		ID:        uuid.New().String(),
		Name:      s.sanitizer.Plain(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Bio:       s.sanitizer.Plain(in.Bio),
		AvatarURL: strings.TrimSpace(in.AvatarURL),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, author); err != nil {
		if err = storeError(s.log, "author", "create author", err); apperror.KindOf(err) == apperror.KindConflict {
			return nil, apperror.Conflict("email_conflict", "an author with this email already exists")
		}
		return nil, err
	}

	s.log.Info().Str("author_id", author.ID).Msg("Author created")
	return author, nil
}

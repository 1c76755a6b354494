package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/repository"
)

// storeError classifies a repository error for the resource being operated on.
// Errors that are already classified pass through unchanged.
func storeError(log zerolog.Logger, resource, op string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Str("op", op).Msg("Store call timed out")
		return apperror.Timeout(op, err)
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(resource)
	case errors.Is(err, repository.ErrConflict):
		return apperror.Conflict(resource+"_conflict", resource+" already exists")
	}

	log.Error().Err(err).Str("op", op).Msg("Store call failed")
	return apperror.Unavailable(op, err)
}

func slugConflict() error {
	return apperror.Conflict("slug_conflict", "an item with this slug already exists")
}

func emptySlug(field string) error {
	return apperror.InvalidInput("validation failed", map[string]string{
		field: "must contain at least one letter or digit",
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
)

func TestPublishedAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := now.Add(-24 * time.Hour)

	assert.Nil(t, publishedAt(nil, models.StatusDraft, now))
	assert.Equal(t, now, *publishedAt(nil, models.StatusPublished, now))
	assert.Equal(t, earlier, *publishedAt(&earlier, models.StatusPublished, now))
	assert.Equal(t, earlier, *publishedAt(&earlier, models.StatusArchived, now))
}

func TestStatusForAction(t *testing.T) {
	for action, want := range map[string]models.PublicationStatus{
		"publish":    models.StatusPublished,
		" Unpublish": models.StatusDraft,
		"ARCHIVE":    models.StatusArchived,
	} {
		got, err := statusForAction(action)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := statusForAction("feature")
	var appErr *apperror.Error
	assert.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Fields, "action")
}

func TestWindows(t *testing.T) {
	limit, offset := window(0, -5)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, _ = window(1000, 0)
	assert.Equal(t, MaxLimit, limit)

	limit, offset = pageWindow(3, 10)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)

	limit, offset = pageWindow(0, 0)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	for _, size := range []int{1, 7, MaxPageSize} {
		limit, offset = pageWindow(math.MaxInt, size)
		assert.Equal(t, size, limit)
		assert.GreaterOrEqual(t, offset, 0, "page size %d", size)
		assert.LessOrEqual(t, offset, math.MaxInt-limit, "page size %d", size)
	}
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"Go", "cloud"}, normalizeTags([]string{" Go ", "go", "", "cloud", "GO"}))
	assert.Empty(t, normalizeTags(nil))
}

func TestEnumFilter(t *testing.T) {
	got, err := enumFilter("", models.ValidCommentStatuses)
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = enumFilter("spam", models.ValidCommentStatuses)
	assert.NoError(t, err)
	assert.Equal(t, models.CommentSpam, *got)

	_, err = enumFilter("hidden", models.ValidCommentStatuses)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestStoreError(t *testing.T) {
	log := zerolog.Nop()

	assert.Nil(t, storeError(log, "article", "get", nil))

	err := storeError(log, "article", "get", fmt.Errorf("scan: %w", repository.ErrNotFound))
	assert.True(t, errors.Is(err, apperror.NotFound("article")))

	err = storeError(log, "subscriber", "create", repository.ErrConflict)
	assert.True(t, errors.Is(err, apperror.Conflict("subscriber_conflict", "")))

	err = storeError(log, "article", "list", context.DeadlineExceeded)
	assert.Equal(t, apperror.KindTimeout, apperror.KindOf(err))

	err = storeError(log, "article", "list", errors.New("connection reset"))
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))

	classified := apperror.InvalidInput("bad", nil)
	assert.Same(t, classified, storeError(log, "article", "list", classified))
}

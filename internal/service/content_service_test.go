package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/models"
)

func TestContentService_CreateDraft(t *testing.T) {
	f := newFixture(t)

	item, err := f.svc.Content.Create(context.Background(), &models.ContentInput{
		Type:    "news",
		Title:   "Hello World!!",
		Content: strings.Repeat("word ", 250),
	})
	require.NoError(t, err)

	assert.Equal(t, "hello-world", item.Slug)
	assert.Equal(t, models.StatusDraft, item.Status)
	assert.Equal(t, 2, item.ReadingTime)
	assert.Nil(t, item.PublishedAt)
	assert.NotNil(t, item.Metadata)
	assert.Len(t, item.ID, 36)
}

func TestContentService_CreateRejectsDuplicateSlugPerType(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: "Launch Day", Content: "x"})
	require.NoError(t, err)

	_, err = f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: "launch day", Content: "y"})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	// Same slug under another type is fine
	_, err = f.svc.Content.Create(ctx, &models.ContentInput{Type: "event", Title: "Launch Day", Content: "z"})
	assert.NoError(t, err)
}

func TestContentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    *models.ContentInput
		field string
	}{
		{"unknown type", &models.ContentInput{Type: "blog", Title: "T", Content: "c"}, "type"},
		{"missing title", &models.ContentInput{Type: "news", Content: "c"}, "title"},
		{"missing body", &models.ContentInput{Type: "news", Title: "T"}, "content"},
		{"bad status", &models.ContentInput{Type: "news", Title: "T", Content: "c", Status: "live"}, "status"},
		{"title without letters", &models.ContentInput{Type: "news", Title: "!!!", Content: "c"}, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Content.Create(ctx, tt.in)
			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
			assert.Contains(t, appErr.Fields, tt.field)
		})
	}
}

func TestContentService_PublishedAtIsStampedOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "tutorial", Title: "Go Basics", Content: "body"})
	require.NoError(t, err)
	require.Nil(t, item.PublishedAt)

	published, err := f.svc.Content.ChangeStatus(ctx, item.ID, "publish")
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	stamp := *published.PublishedAt

	archived, err := f.svc.Content.ChangeStatus(ctx, item.ID, "archive")
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, archived.Status)
	require.NotNil(t, archived.PublishedAt)
	assert.True(t, stamp.Equal(*archived.PublishedAt))

	republished, err := f.svc.Content.ChangeStatus(ctx, item.ID, "publish")
	require.NoError(t, err)
	assert.True(t, stamp.Equal(*republished.PublishedAt))
}

func TestContentService_ChangeStatusRejectsUnknownAction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "tool", Title: "Linter", Content: "body"})
	require.NoError(t, err)

	_, err = f.svc.Content.ChangeStatus(ctx, item.ID, "delete")
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))

	_, err = f.svc.Content.ChangeStatus(ctx, "8d3c52c4-8f0e-4a43-b6f1-0e1d8f1f0c11", "publish")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestContentService_UpdateMovesSlugAndReadingTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: "Old Title", Content: "short"})
	require.NoError(t, err)
	_, err = f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: "Taken", Content: "short"})
	require.NoError(t, err)

	updated, err := f.svc.Content.Update(ctx, item.ID, &models.ContentPatch{
		Title:   strPtr("New Title"),
		Content: strPtr(strings.Repeat("word ", 401)),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-title", updated.Slug)
	assert.Equal(t, 3, updated.ReadingTime)
	assert.True(t, updated.UpdatedAt.After(item.UpdatedAt) || updated.UpdatedAt.Equal(item.UpdatedAt))

	_, err = f.svc.Content.Update(ctx, item.ID, &models.ContentPatch{Title: strPtr("Taken")})
	assert.True(t, errors.Is(err, apperror.Conflict("slug_conflict", "")))
}

func TestContentService_UpdateRejectsBlankBody(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "tool", Title: "Linters", Content: "keep me"})
	require.NoError(t, err)

	_, err = f.svc.Content.Update(ctx, item.ID, &models.ContentPatch{Content: strPtr("")})
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
	assert.Contains(t, appErr.Fields, "content")

	got, err := f.svc.Content.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Body)
}

func TestContentService_SanitizesBody(t *testing.T) {
	f := newFixture(t)

	item, err := f.svc.Content.Create(context.Background(), &models.ContentInput{
		Type:    "news",
		Title:   "Sanitized",
		Content: `<p>safe</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Contains(t, item.Body, "<p>safe</p>")
	assert.NotContains(t, item.Body, "script")
}

func TestContentService_GetPublishedHidesDrafts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "podcast", Title: "Episode One", Content: "audio"})
	require.NoError(t, err)

	got, err := f.svc.Content.Get(ctx, "episode-one")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)

	_, err = f.svc.Content.GetPublished(ctx, item.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.Content.ChangeStatus(ctx, item.ID, "publish")
	require.NoError(t, err)

	got, err = f.svc.Content.GetPublished(ctx, "episode-one")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, got.Status)
}

func TestContentService_ListPublishedOnlyReturnsPublished(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: title, Content: "c", Status: "published"})
		require.NoError(t, err)
	}
	_, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "news", Title: "Draft", Content: "c"})
	require.NoError(t, err)

	page, err := f.svc.Content.ListPublished(ctx, models.ContentFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Equal(t, models.StatusPublished, item.Status)
	}

	all, err := f.svc.Content.List(ctx, models.ContentFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Meta.Total)
	assert.Equal(t, 100, all.Meta.Limit)
}

func TestContentService_DeleteReturnsItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	item, err := f.svc.Content.Create(ctx, &models.ContentInput{Type: "service", Title: "Consulting", Content: "c"})
	require.NoError(t, err)

	deleted, err := f.svc.Content.Delete(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, deleted.ID)

	_, err = f.svc.Content.Get(ctx, item.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

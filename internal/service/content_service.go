package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/slug"
	"github.com/tech-hub-api/internal/validation"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	repo      repository.ContentRepository
	sanitizer *validation.Sanitizer
	listings  *listingCache
	log       zerolog.Logger
}

func newContentService(repo repository.ContentRepository, sanitizer *validation.Sanitizer, listings *listingCache, log zerolog.Logger) *contentService {
	return &contentService{
		repo:      repo,
		sanitizer: sanitizer,
		listings:  listings,
		log:       log.With().Str("service", "content").Logger(),
	}
}

// Create validates and stores a new content item
func (s *contentService) Create(ctx context.Context, in *models.ContentInput) (*models.Content, error) {
	if err := validation.ValidateContentInput(in); err != nil {
		return nil, err
	}

	contentType := models.ContentType(in.Type)
	itemSlug := slug.Generate(in.Title)
	if itemSlug == "" {
		return nil, emptySlug("title")
	}
	if err := s.ensureSlugFree(ctx, contentType, itemSlug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := initialStatus(in.Status)
	body := s.sanitizer.Rich(in.Content)
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	item := &models.Content{
		ID:            uuid.New().String(),
		Type:          contentType,
		Title:         strings.TrimSpace(in.Title),
		Slug:          itemSlug,
		Description:   s.sanitizer.Plain(in.Description),
		Body:          body,
		FeaturedImage: strings.TrimSpace(in.FeaturedImage),
		Status:        status,
		IsFeatured:    in.IsFeatured,
		ReadingTime:   models.ReadingTime(body),
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
		PublishedAt:   publishedAt(nil, status, now),
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if err = storeError(s.log, "content", "create content", err); apperror.KindOf(err) == apperror.KindConflict {
			return nil, slugConflict()
		}
		return nil, err
	}

	s.mutated(ctx, "create")
	s.log.Info().Str("content_id", item.ID).Str("slug", item.Slug).Str("status", string(item.Status)).Msg("Content created")
	return item, nil
}

// Update applies a partial update. The slug follows the title and the publish
// timestamp is stamped once.
func (s *contentService) Update(ctx context.Context, id string, patch *models.ContentPatch) (*models.Content, error) {
	if err := validation.ValidateContentPatch(patch); err != nil {
		return nil, err
	}

	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	rekey := false
	if patch.Type != nil && models.ContentType(*patch.Type) != item.Type {
		item.Type = models.ContentType(*patch.Type)
		rekey = true
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) != item.Title {
		newSlug := slug.Generate(*patch.Title)
		if newSlug == "" {
			return nil, emptySlug("title")
		}
		item.Title = strings.TrimSpace(*patch.Title)
		rekey = rekey || newSlug != item.Slug
		item.Slug = newSlug
	}
	if rekey {
		if err := s.ensureSlugFree(ctx, item.Type, item.Slug, item.ID); err != nil {
			return nil, err
		}
	}

	if patch.Description != nil {
		item.Description = s.sanitizer.Plain(*patch.Description)
	}
	if patch.Content != nil {
		item.Body = s.sanitizer.Rich(*patch.Content)
		item.ReadingTime = models.ReadingTime(item.Body)
	}
	if patch.FeaturedImage != nil {
		item.FeaturedImage = strings.TrimSpace(*patch.FeaturedImage)
	}
	if patch.IsFeatured != nil {
		item.IsFeatured = *patch.IsFeatured
	}
	if patch.Metadata != nil {
		item.Metadata = *patch.Metadata
		if item.Metadata == nil {
			item.Metadata = map[string]interface{}{}
		}
	}

	now := time.Now().UTC()
	if patch.Status != nil {
		item.Status = models.PublicationStatus(*patch.Status)
		item.PublishedAt = publishedAt(item.PublishedAt, item.Status, now)
	}
	item.UpdatedAt = now

	if err := s.save(ctx, item, "update"); err != nil {
		return nil, err
	}
	return item, nil
}

// ChangeStatus applies a publish, unpublish or archive action
func (s *contentService) ChangeStatus(ctx context.Context, id, action string) (*models.Content, error) {
	status, err := statusForAction(action)
	if err != nil {
		return nil, err
	}

	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.Status = status
	item.PublishedAt = publishedAt(item.PublishedAt, status, now)
	item.UpdatedAt = now

	if err := s.save(ctx, item, "status"); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a content item and returns it as it was
func (s *contentService) Delete(ctx context.Context, id string) (*models.Content, error) {
	item, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return nil, storeError(s.log, "content", "delete content", err)
	}

	s.mutated(ctx, "delete")
	s.log.Info().Str("content_id", item.ID).Msg("Content deleted")
	return item, nil
}

// Get returns an item by id or slug regardless of status
func (s *contentService) Get(ctx context.Context, idOrSlug string) (*models.Content, error) {
	var (
		item *models.Content
		err  error
	)
	if isID(idOrSlug) {
		item, err = s.repo.GetByID(ctx, idOrSlug)
	} else {
		item, err = s.repo.GetBySlug(ctx, idOrSlug, nil)
	}
	if err != nil {
		return nil, storeError(s.log, "content", "get content", err)
	}
	if item == nil {
		return nil, apperror.NotFound("content")
	}
	return item, nil
}

// GetPublished returns an item only when it is published
func (s *contentService) GetPublished(ctx context.Context, idOrSlug string) (*models.Content, error) {
	item, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if item.Status != models.StatusPublished {
		return nil, apperror.NotFound("content")
	}
	return item, nil
}

// List returns one page of content, newest first
func (s *contentService) List(ctx context.Context, filter models.ContentFilter) (*models.Page[models.Content], error) {
	filter.Limit, filter.Offset = window(filter.Limit, filter.Offset)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "content", "list content", err)
	}
	return newPage(items, total, filter.Limit, filter.Offset), nil
}

// ListPublished lists published content through the read cache
func (s *contentService) ListPublished(ctx context.Context, filter models.ContentFilter) (*models.Page[models.Content], error) {
	published := models.StatusPublished
	filter.Status = &published
	filter.Limit, filter.Offset = window(filter.Limit, filter.Offset)

	key := contentCacheKey(filter)
	var page models.Page[models.Content]
	at, hit := s.listings.get(ctx, cache.NamespaceContent, key, &page)
	if hit {
		return &page, nil
	}

	result, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.listings.set(ctx, cache.NamespaceContent, at, key, result)
	return result, nil
}

func (s *contentService) load(ctx context.Context, id string) (*models.Content, error) {
	if !isID(id) {
		return nil, apperror.NotFound("content")
	}
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "content", "get content", err)
	}
	if item == nil {
		return nil, apperror.NotFound("content")
	}
	return item, nil
}

func (s *contentService) save(ctx context.Context, item *models.Content, op string) error {
	if err := s.repo.Update(ctx, item); err != nil {
		if err = storeError(s.log, "content", "update content", err); apperror.KindOf(err) == apperror.KindConflict {
			return slugConflict()
		}
		return err
	}
	s.mutated(ctx, op)
	s.log.Info().Str("content_id", item.ID).Str("status", string(item.Status)).Str("op", op).Msg("Content updated")
	return nil
}

func (s *contentService) ensureSlugFree(ctx context.Context, contentType models.ContentType, itemSlug, excludeID string) error {
	exists, err := s.repo.SlugExists(ctx, contentType, itemSlug, excludeID)
	if err != nil {
		return storeError(s.log, "content", "check slug", err)
	}
	if exists {
		return slugConflict()
	}
	return nil
}

func (s *contentService) mutated(ctx context.Context, op string) {
	metrics.ContentMutations.WithLabelValues("content", op).Inc()
	s.listings.invalidate(ctx, cache.NamespaceContent)
}

func contentCacheKey(f models.ContentFilter) string {
	return cacheKey("list", f.Limit, f.Offset, f.Type, f.IsFeatured)
}

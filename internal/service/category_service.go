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

// categoryService is the concrete implementation of CategoryService
type categoryService struct {
	repo     repository.CategoryRepository
	listings *listingCache
	log      zerolog.Logger
}

func newCategoryService(repo repository.CategoryRepository, listings *listingCache, log zerolog.Logger) *categoryService {
	return &categoryService{
		repo:     repo,
		listings: listings,
		log:      log.With().Str("service", "category").Logger(),
	}
}

// List returns every category ordered by name
func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(s.log, "category", "list categories", err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return categories, nil
}

// GetBySlug returns a category by slug
func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, strings.ToLower(categorySlug))
	if err != nil {
		return nil, storeError(s.log, "category", "get category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category")
	}
	return category, nil
}

// Create stores a new category; its slug is derived from the name
func (s *categoryService) Create(ctx context.Context, in *models.CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryInput(in); err != nil {
		return nil, err
	}

	categorySlug := slug.Generate(in.Name)
	if categorySlug == "" {
		return nil, emptySlug("name")
	}
	if err := s.ensureSlugFree(ctx, categorySlug, ""); err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Slug:        categorySlug,
		Description: strings.TrimSpace(in.Description),
		Color:       strings.ToLower(in.Color),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, category); err != nil {
		if err = storeError(s.log, "category", "create category", err); apperror.KindOf(err) == apperror.KindConflict {
			return nil, slugConflict()
		}
		return nil, err
	}

	s.mutated(ctx, "create")
	s.log.Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

// Update replaces a category's fields; renaming moves its slug
func (s *categoryService) Update(ctx context.Context, id string, in *models.CategoryInput) (*models.Category, error) {
	if err := validation.ValidateCategoryInput(in); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, apperror.NotFound("category")
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "category", "get category", err)
	}
	if category == nil {
		return nil, apperror.NotFound("category")
	}

	categorySlug := slug.Generate(in.Name)
	if categorySlug == "" {
		return nil, emptySlug("name")
	}
	if categorySlug != category.Slug {
		if err := s.ensureSlugFree(ctx, categorySlug, category.ID); err != nil {
			return nil, err
		}
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = categorySlug
	category.Description = strings.TrimSpace(in.Description)
	category.Color = strings.ToLower(in.Color)

	if err := s.repo.Update(ctx, category); err != nil {
		if err = storeError(s.log, "category", "update category", err); apperror.KindOf(err) == apperror.KindConflict {
			return nil, slugConflict()
		}
		return nil, err
	}

	s.mutated(ctx, "update")
	return category, nil
}

// Delete removes a category; articles in it become uncategorised
func (s *categoryService) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return apperror.NotFound("category")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeError(s.log, "category", "delete category", err)
	}
	s.mutated(ctx, "delete")
	s.log.Info().Str("category_id", id).Msg("Category deleted")
	return nil
}

func (s *categoryService) ensureSlugFree(ctx context.Context, categorySlug, excludeID string) error {
	exists, err := s.repo.SlugExists(ctx, categorySlug, excludeID)
	if err != nil {
		return storeError(s.log, "category", "check slug", err)
	}
	if exists {
		return slugConflict()
	}
	return nil
}

// mutated invalidates article listings too, since they carry the category slug
func (s *categoryService) mutated(ctx context.Context, op string) {
	metrics.ContentMutations.WithLabelValues("category", op).Inc()
	s.listings.invalidate(ctx, cache.NamespaceArticles)
}

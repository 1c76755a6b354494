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

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles   repository.ArticleRepository
	categories repository.CategoryRepository
	authors    repository.AuthorRepository
	sanitizer  *validation.Sanitizer
	listings   *listingCache
	log        zerolog.Logger
}

func newArticleService(repos *repository.Repositories, sanitizer *validation.Sanitizer, listings *listingCache, log zerolog.Logger) *articleService {
	return &articleService{
		articles:   repos.Article,
		categories: repos.Category,
		authors:    repos.Author,
		sanitizer:  sanitizer,
		listings:   listings,
		log:        log.With().Str("service", "article").Logger(),
	}
}

// Create validates and stores a new article
func (s *articleService) Create(ctx context.Context, in *models.ArticleInput) (*models.Article, error) {
	if err := validation.ValidateArticleInput(in); err != nil {
		return nil, err
	}

	articleSlug := slug.Generate(in.Title)
	if articleSlug == "" {
		return nil, emptySlug("title")
	}
	if err := s.ensureSlugFree(ctx, articleSlug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	status := initialStatus(in.Status)
	body := s.sanitizer.Rich(in.Content)

	article := &models.Article{
		ID:             uuid.New().String(),
		Title:          strings.TrimSpace(in.Title),
		Slug:           articleSlug,
		Excerpt:        s.sanitizer.Plain(in.Excerpt),
		Content:        body,
		FeaturedImage:  strings.TrimSpace(in.FeaturedImage),
		Tags:           normalizeTags(in.Tags),
		Status:         status,
		IsFeatured:     in.IsFeatured,
		ReadingTime:    models.ReadingTime(body),
		SEOTitle:       s.sanitizer.Plain(in.SEOTitle),
		SEODescription: s.sanitizer.Plain(in.SEODescription),
		CreatedAt:      now,
		UpdatedAt:      now,
		PublishedAt:    publishedAt(nil, status, now),
	}
	if err := s.setAuthor(ctx, article, in.AuthorID); err != nil {
		return nil, err
	}
	if err := s.setCategory(ctx, article, in.CategoryID); err != nil {
		return nil, err
	}

	if err := s.articles.Create(ctx, article); err != nil {
		if err = storeError(s.log, "article", "create article", err); apperror.KindOf(err) == apperror.KindConflict {
			return nil, slugConflict()
		}
		return nil, err
	}

	s.mutated(ctx, "create")
	s.log.Info().Str("article_id", article.ID).Str("slug", article.Slug).Str("status", string(article.Status)).Msg("Article created")
	return article, nil
}

// Update applies a partial update with the same slug and publication rules as Create
func (s *articleService) Update(ctx context.Context, id string, patch *models.ArticlePatch) (*models.Article, error) {
	if err := validation.ValidateArticlePatch(patch); err != nil {
		return nil, err
	}

	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) != article.Title {
		newSlug := slug.Generate(*patch.Title)
		if newSlug == "" {
			return nil, emptySlug("title")
		}
		if newSlug != article.Slug {
			if err := s.ensureSlugFree(ctx, newSlug, article.ID); err != nil {
				return nil, err
			}
		}
		article.Title = strings.TrimSpace(*patch.Title)
		article.Slug = newSlug
	}
	if patch.Excerpt != nil {
		article.Excerpt = s.sanitizer.Plain(*patch.Excerpt)
	}
	if patch.Content != nil {
		article.Content = s.sanitizer.Rich(*patch.Content)
		article.ReadingTime = models.ReadingTime(article.Content)
	}
	if patch.FeaturedImage != nil {
		article.FeaturedImage = strings.TrimSpace(*patch.FeaturedImage)
	}
	if patch.Tags != nil {
		article.Tags = normalizeTags(*patch.Tags)
	}
	if patch.IsFeatured != nil {
		article.IsFeatured = *patch.IsFeatured
	}
	if patch.SEOTitle != nil {
		article.SEOTitle = s.sanitizer.Plain(*patch.SEOTitle)
	}
	if patch.SEODescription != nil {
		article.SEODescription = s.sanitizer.Plain(*patch.SEODescription)
	}
	if patch.AuthorID != nil {
		if err := s.setAuthor(ctx, article, *patch.AuthorID); err != nil {
			return nil, err
		}
	}
	if patch.CategoryID != nil {
		if err := s.setCategory(ctx, article, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if patch.Status != nil {
		article.Status = models.PublicationStatus(*patch.Status)
		article.PublishedAt = publishedAt(article.PublishedAt, article.Status, now)
	}
	article.UpdatedAt = now

	if err := s.save(ctx, article, "update"); err != nil {
		return nil, err
	}
	return article, nil
}

// ChangeStatus applies a publish, unpublish or archive action
func (s *articleService) ChangeStatus(ctx context.Context, id, action string) (*models.Article, error) {
	status, err := statusForAction(action)
	if err != nil {
		return nil, err
	}

	article, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	article.Status = status
	article.PublishedAt = publishedAt(article.PublishedAt, status, now)
	article.UpdatedAt = now

	if err := s.save(ctx, article, "status"); err != nil {
		return nil, err
	}
	return article, nil
}

// Delete removes an article; its comments go with it
func (s *articleService) Delete(ctx context.Context, id string) error {
	if !isID(id) {
		return apperror.NotFound("article")
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return storeError(s.log, "article", "delete article", err)
	}

	s.mutated(ctx, "delete")
	s.listings.invalidate(ctx, cache.NamespaceComments)
	s.log.Info().Str("article_id", id).Msg("Article deleted")
	return nil
}

// Get returns an article by id or slug regardless of status
func (s *articleService) Get(ctx context.Context, idOrSlug string) (*models.Article, error) {
	var (
		article *models.Article
		err     error
	)
	if isID(idOrSlug) {
		article, err = s.articles.GetByID(ctx, idOrSlug)
	} else {
		article, err = s.articles.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, storeError(s.log, "article", "get article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article")
	}
	return article, nil
}

// GetPublished returns an article only when it is published
func (s *articleService) GetPublished(ctx context.Context, idOrSlug string) (*models.Article, error) {
	article, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, apperror.NotFound("article")
	}
	return article, nil
}

// List returns one page of articles for the admin dashboard
func (s *articleService) List(ctx context.Context, q ArticleQuery) (*models.Page[models.Article], error) {
	filter := articleFilter(q)
	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "article", "list articles", err)
	}
	return newPage(articles, total, filter.Limit, filter.Offset), nil
}

// ListPublished lists and searches published articles through the read cache.
// A blank search term and the "all" category both mean no filter.
func (s *articleService) ListPublished(ctx context.Context, q ArticleQuery) (*models.Page[models.Article], error) {
	published := models.StatusPublished
	q.Status = &published
	filter := articleFilter(q)

	key := cacheKey("list", filter.CategorySlug, strings.ToLower(filter.Search), filter.Limit, filter.Offset)
	var page models.Page[models.Article]
	at, hit := s.listings.get(ctx, cache.NamespaceArticles, key, &page)
	if hit {
		return &page, nil
	}

	articles, total, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "article", "list articles", err)
	}
	result := newPage(articles, total, filter.Limit, filter.Offset)
	s.listings.set(ctx, cache.NamespaceArticles, at, key, result)
	return result, nil
}

func articleFilter(q ArticleQuery) models.ArticleFilter {
	limit, offset := pageWindow(q.Page, q.PageSize)
	category := strings.ToLower(strings.TrimSpace(q.Category))
	if category == models.AllCategories {
		category = ""
	}
	return models.ArticleFilter{
		CategorySlug: category,
		Status:       q.Status,
		Search:       strings.TrimSpace(q.Search),
		Limit:        limit,
		Offset:       offset,
	}
}

func (s *articleService) setAuthor(ctx context.Context, article *models.Article, authorID string) error {
	if authorID == "" {
		article.AuthorID = nil
		return nil
	}
	author, err := s.authors.GetByID(ctx, authorID)
	if err != nil {
		return storeError(s.log, "author", "get author", err)
	}
	if author == nil {
		return apperror.InvalidInput("validation failed", map[string]string{"authorId": "unknown author"})
	}
	article.AuthorID = &author.ID
	return nil
}

func (s *articleService) setCategory(ctx context.Context, article *models.Article, categoryID string) error {
	if categoryID == "" {
		article.CategoryID = nil
		article.CategorySlug = ""
		return nil
	}
	category, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return storeError(s.log, "category", "get category", err)
	}
	if category == nil {
		return apperror.InvalidInput("validation failed", map[string]string{"categoryId": "unknown category"})
	}
	article.CategoryID = &category.ID
	article.CategorySlug = category.Slug
	return nil
}

func (s *articleService) load(ctx context.Context, id string) (*models.Article, error) {
	if !isID(id) {
		return nil, apperror.NotFound("article")
	}
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "article", "get article", err)
	}
	if article == nil {
		return nil, apperror.NotFound("article")
	}
	return article, nil
}

func (s *articleService) save(ctx context.Context, article *models.Article, op string) error {
	if err := s.articles.Update(ctx, article); err != nil {
		if err = storeError(s.log, "article", "update article", err); apperror.KindOf(err) == apperror.KindConflict {
			return slugConflict()
		}
		return err
	}
	s.mutated(ctx, op)
	s.log.Info().Str("article_id", article.ID).Str("status", string(article.Status)).Str("op", op).Msg("Article updated")
	return nil
}

func (s *articleService) ensureSlugFree(ctx context.Context, articleSlug, excludeID string) error {
	exists, err := s.articles.SlugExists(ctx, articleSlug, excludeID)
	if err != nil {
		return storeError(s.log, "article", "check slug", err)
	}
	if exists {
		return slugConflict()
	}
	return nil
}

func (s *articleService) mutated(ctx context.Context, op string) {
	metrics.ContentMutations.WithLabelValues("article", op).Inc()
	s.listings.invalidate(ctx, cache.NamespaceArticles)
}

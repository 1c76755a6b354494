package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/mocks"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/service"
)

var day = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func seedCatalogue(f *fixture) {
	f.seedArticle("a1000000-0000-4000-8000-000000000001", "Kubernetes in Production", "cloud", models.StatusPublished, day)
	f.seedArticle("a1000000-0000-4000-8000-000000000002", "Prompt Engineering", "ai", models.StatusPublished, day.Add(time.Hour))
	f.seedArticle("a1000000-0000-4000-8000-000000000003", "Serverless Costs", "cloud", models.StatusPublished, day.Add(2*time.Hour))
	f.seedArticle("a1000000-0000-4000-8000-000000000004", "Unreleased Draft", "cloud", models.StatusDraft, day.Add(3*time.Hour))
}

func TestArticleService_AllCategoryMeansNoFilter(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()

	all, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Category: "all"})
	require.NoError(t, err)
	none, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, all.Meta.Total)
	assert.Equal(t, none.Meta.Total, all.Meta.Total)
	require.Len(t, all.Items, 3)
	for i := range all.Items {
		assert.Equal(t, none.Items[i].ID, all.Items[i].ID)
	}
}

func TestArticleService_BlankSearchMeansNoFilter(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()

	blank, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Search: "   "})
	require.NoError(t, err)
	assert.Equal(t, 3, blank.Meta.Total)

	hits, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Search: "KUBERNETES"})
	require.NoError(t, err)
	require.Equal(t, 1, hits.Meta.Total)
	assert.Equal(t, "Kubernetes in Production", hits.Items[0].Title)
}

func TestArticleService_ListPublishedOrderAndCategory(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)

	page, err := f.svc.Article.ListPublished(context.Background(), service.ArticleQuery{Category: "Cloud"})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Serverless Costs", page.Items[0].Title)
	assert.Equal(t, "Kubernetes in Production", page.Items[1].Title)
}

func TestArticleService_PageWindow(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()

	page, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.Offset)
	assert.Len(t, page.Items, 1)

	page, err = f.svc.Article.ListPublished(ctx, service.ArticleQuery{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, service.MaxPageSize, page.Meta.Limit)
}

func TestArticleService_AdminListSeesDrafts(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()

	page, err := f.svc.Article.List(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Meta.Total)

	draft := models.StatusDraft
	page, err = f.svc.Article.List(ctx, service.ArticleQuery{Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Total)
}

func TestArticleService_CreateNormalizesAndLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	category, err := f.svc.Category.Create(ctx, &models.CategoryInput{Name: "Cloud Computing", Color: "#1E40AF"})
	require.NoError(t, err)

	article, err := f.svc.Article.Create(ctx, &models.ArticleInput{
		Title:      "Edge Functions Explained",
		Content:    "<p>Edge <b>functions</b></p>",
		Excerpt:    "<i>short</i>",
		Tags:       []string{" edge ", "Edge", "serverless"},
		CategoryID: category.ID,
		Status:     "published",
	})
	require.NoError(t, err)

	assert.Equal(t, "edge-functions-explained", article.Slug)
	assert.Equal(t, []string{"edge", "serverless"}, article.Tags)
	assert.Equal(t, "short", article.Excerpt)
	assert.Equal(t, "cloud-computing", article.CategorySlug)
	assert.NotNil(t, article.PublishedAt)
	assert.Equal(t, "#1e40af", category.Color)
}

func TestArticleService_CreateRejectsUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Article.Create(ctx, &models.ArticleInput{
		Title:    "Orphan",
		Content:  "body",
		AuthorID: "0f8c2d44-3b1a-4f7e-9c55-6a2b1c3d4e5f",
	})
	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindInvalidInput, appErr.Kind)
	assert.Contains(t, appErr.Fields, "authorId")
}

func TestArticleService_GetPublished(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()

	got, err := f.svc.Article.GetPublished(ctx, "a1000000-0000-4000-8000-000000000002")
	require.NoError(t, err)
	assert.Equal(t, "Prompt Engineering", got.Title)

	_, err = f.svc.Article.GetPublished(ctx, "a1000000-0000-4000-8000-000000000004")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	_, err = f.svc.Article.GetPublished(ctx, "no-such-slug")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestArticleService_ListingCacheInvalidatedOnWrite(t *testing.T) {
	f := newFixtureWithCache(t, newRedisCache(t))
	seedCatalogue(f)
	ctx := context.Background()

	first, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.articles().ListCalls)

	second, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.articles().ListCalls, "second read should be served from cache")
	assert.Equal(t, first.Meta.Total, second.Meta.Total)

	_, err = f.svc.Article.Create(ctx, &models.ArticleInput{Title: "Fresh Story", Content: "news", Status: "published"})
	require.NoError(t, err)

	third, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, f.articles().ListCalls)
	assert.Equal(t, 4, third.Meta.Total)
}

// racingArticles lets a write commit after the listing rows were read but
// before the listing is returned
type racingArticles struct {
	*mocks.MockArticleRepository
	afterRead func()
}

func (r *racingArticles) List(ctx context.Context, filter models.ArticleFilter) ([]*models.Article, int, error) {
	items, total, err := r.MockArticleRepository.List(ctx, filter)
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return items, total, err
}

func TestArticleService_WriteDuringListingIsNotCached(t *testing.T) {
	repos := mocks.NewRepositories()
	base := repos.Article.(*mocks.MockArticleRepository)
	racing := &racingArticles{MockArticleRepository: base}
	repos.Article = racing
	svc := service.NewServices(repos, testConfig(), service.Deps{Cache: newRedisCache(t)}, zerolog.Nop())
	ctx := context.Background()

	const id = "a1000000-0000-4000-8000-000000000010"
	p := day
	base.Articles[id] = &models.Article{
		ID: id, Title: "Soon Withdrawn", Slug: "soon-withdrawn", Content: "body",
		CategorySlug: "cloud", Status: models.StatusPublished, ReadingTime: 1,
		CreatedAt: day, UpdatedAt: day, PublishedAt: &p,
	}

	racing.afterRead = func() {
		_, err := svc.Article.ChangeStatus(ctx, id, "unpublish")
		require.NoError(t, err)
	}

	inFlight, err := svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, inFlight.Meta.Total, "the in-flight read saw the row before the write")

	after, err := svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, after.Meta.Total)
	assert.Empty(t, after.Items)
	assert.Equal(t, 2, base.ListCalls, "the page read before the write must not be served from cache")
}

func TestArticleService_CacheKeysDoNotCollide(t *testing.T) {
	f := newFixtureWithCache(t, newRedisCache(t))
	f.seedArticle("a1000000-0000-4000-8000-000000000020", "q3: Cloud Spend Review", "cloud", models.StatusPublished, day)
	ctx := context.Background()

	odd, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Category: "cloud:q3"})
	require.NoError(t, err)
	assert.Equal(t, 0, odd.Meta.Total)

	searched, err := f.svc.Article.ListPublished(ctx, service.ArticleQuery{Category: "cloud", Search: "q3:"})
	require.NoError(t, err)
	assert.Equal(t, 1, searched.Meta.Total)
	assert.Equal(t, 2, f.articles().ListCalls)
}

func TestArticleService_PublishedAtSetOnce(t *testing.T) {
	f := newFixture(t)
	const id = "a1000000-0000-4000-8000-000000000030"
	f.seedArticle(id, "Release Notes", "cloud", models.StatusDraft, day)
	ctx := context.Background()

	published, err := f.svc.Article.ChangeStatus(ctx, id, "publish")
	require.NoError(t, err)
	require.NotNil(t, published.PublishedAt)
	first := *published.PublishedAt

	unpublished, err := f.svc.Article.ChangeStatus(ctx, id, "unpublish")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, unpublished.Status)
	require.NotNil(t, unpublished.PublishedAt)
	assert.True(t, first.Equal(*unpublished.PublishedAt))

	republished, err := f.svc.Article.Update(ctx, id, &models.ArticlePatch{Status: strPtr("published")})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, republished.Status)
	assert.True(t, first.Equal(*republished.PublishedAt))

	archived, err := f.svc.Article.ChangeStatus(ctx, id, "archive")
	require.NoError(t, err)
	assert.True(t, first.Equal(*archived.PublishedAt))

	stored := f.articles().Articles[id]
	assert.True(t, first.Equal(*stored.PublishedAt))
}

func TestArticleService_ListFailureIsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.articles().ListError = errors.New("connection refused")

	_, err := f.svc.Article.ListPublished(context.Background(), service.ArticleQuery{})
	assert.Equal(t, apperror.KindUnavailable, apperror.KindOf(err))
}

func TestArticleService_Delete(t *testing.T) {
	f := newFixture(t)
	seedCatalogue(f)
	ctx := context.Background()
	id := "a1000000-0000-4000-8000-000000000001"

	require.NoError(t, f.svc.Article.Delete(ctx, id))

	_, err := f.svc.Article.Get(ctx, id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	err = f.svc.Article.Delete(ctx, id)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestReadOnlyServices(t *testing.T) {
	svc := service.NewReadOnlyServices(testConfig(), service.Deps{}, zerolog.Nop())
	ctx := context.Background()

	assert.True(t, svc.ReadOnly)
	assert.Nil(t, svc.Content)

	page, err := svc.Article.ListPublished(ctx, service.ArticleQuery{})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Meta.Total)

	cloud, err := svc.Article.ListPublished(ctx, service.ArticleQuery{Category: "cloud"})
	require.NoError(t, err)
	assert.Equal(t, 2, cloud.Meta.Total)

	got, err := svc.Article.GetPublished(ctx, "a-field-guide-to-zero-trust-security")
	require.NoError(t, err)
	assert.Equal(t, "security", got.CategorySlug)

	beyond, err := svc.Article.ListPublished(ctx, service.ArticleQuery{Page: math.MaxInt, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 6, beyond.Meta.Total)
	assert.GreaterOrEqual(t, beyond.Meta.Offset, 0)
}

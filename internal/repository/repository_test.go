package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/models"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestWhere_NumbersPlaceholdersInOrder(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	w.add("status = ?", "published")
	w.add("(title ILIKE ? OR excerpt ILIKE ?)", "%go%", "%go%")
	w.add("deleted_at IS NULL")

	assert.Equal(t, " WHERE status = $1 AND (title ILIKE $2 OR excerpt ILIKE $3) AND deleted_at IS NULL", w.String())

	clause, args := w.page(10, 20)
	assert.Equal(t, " LIMIT $4 OFFSET $5", clause)
	assert.Equal(t, []interface{}{"published", "%go%", "%go%", 10, 20}, args)
	// page must not grow the filter arguments used by the count query
	assert.Len(t, w.args, 3)
}

func TestLikePattern_EscapesMetacharacters(t *testing.T) {
	assert.Equal(t, "%go%", likePattern("go"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestNullString(t *testing.T) {
	empty, id := "", "author-1"
	assert.Nil(t, nullString(nil))
	assert.Nil(t, nullString(&empty))
	assert.Equal(t, "author-1", nullString(&id))
}

func TestTranslate(t *testing.T) {
	err := translate(&pq.Error{Code: uniqueViolation, Constraint: "articles_slug_key"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "articles_slug_key")

	other := errors.New("connection reset")
	assert.Same(t, other, translate(other))

	fk := &pq.Error{Code: "23503"}
	assert.NotErrorIs(t, translate(fk), ErrConflict)
}

func TestAffectedOne(t *testing.T) {
	assert.NoError(t, affectedOne(fakeResult{rows: 1}, nil))
	assert.ErrorIs(t, affectedOne(fakeResult{rows: 0}, nil), ErrNotFound)
	assert.ErrorIs(t, affectedOne(nil, &pq.Error{Code: uniqueViolation}), ErrConflict)

	countErr := errors.New("not supported")
	assert.Equal(t, countErr, affectedOne(fakeResult{err: countErr}, nil))
}

func TestPlaceholder_ListFiltersAndPages(t *testing.T) {
	repo := NewPlaceholderArticleRepo()
	ctx := context.Background()
	published := models.StatusPublished

	all, total, err := repo.List(ctx, models.ArticleFilter{Status: &published})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].SortTime().After(all[i-1].SortTime()), "newest first")
	}

	cloud, total, err := repo.List(ctx, models.ArticleFilter{CategorySlug: "cloud"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, a := range cloud {
		assert.Equal(t, "cloud", a.CategorySlug)
	}

	everything, total, err := repo.List(ctx, models.ArticleFilter{CategorySlug: models.AllCategories})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, everything, 6)

	page, total, err := repo.List(ctx, models.ArticleFilter{Limit: 4, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Len(t, page, 2)

	beyond, total, err := repo.List(ctx, models.ArticleFilter{Limit: 4, Offset: 12})
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Empty(t, beyond)

	negative, _, err := repo.List(ctx, models.ArticleFilter{Limit: 10, Offset: -10})
	require.NoError(t, err)
	assert.Empty(t, negative)

	tail, _, err := repo.List(ctx, models.ArticleFilter{Limit: math.MaxInt, Offset: 5})
	require.NoError(t, err)
	assert.Len(t, tail, 1)

	tagged, _, err := repo.List(ctx, models.ArticleFilter{Search: "POSTGRES"})
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "choosing-a-database-for-your-next-project", tagged[0].Slug)
}

func TestPlaceholder_LookupsAndViews(t *testing.T) {
	repo := NewPlaceholderArticleRepo()
	ctx := context.Background()

	a, err := repo.GetBySlug(ctx, "a-field-guide-to-zero-trust-security")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a03", a.ID)

	missing, err := repo.GetByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.IncrementViews(ctx, a.ID))
	require.NoError(t, repo.IncrementViews(ctx, a.ID))
	after, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Views+2, after.Views)

	assert.ErrorIs(t, repo.IncrementViews(ctx, "does-not-exist"), ErrNotFound)

	// returned copies do not leak into the catalogue
	after.Title = "changed"
	again, _ := repo.GetByID(ctx, a.ID)
	assert.Equal(t, "A Field Guide to Zero-Trust Security", again.Title)
}

func TestPlaceholder_IsReadOnly(t *testing.T) {
	repo := NewPlaceholderArticleRepo()
	ctx := context.Background()

	assert.ErrorIs(t, repo.Create(ctx, &models.Article{}), ErrReadOnly)
	assert.ErrorIs(t, repo.Update(ctx, &models.Article{}), ErrReadOnly)
	assert.ErrorIs(t, repo.Delete(ctx, "5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a01"), ErrReadOnly)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, counts[models.StatusPublished])
	assert.Equal(t, 0, counts[models.StatusDraft])

	exists, err := repo.SlugExists(ctx, "fintech-apis-every-developer-should-know", "")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.SlugExists(ctx, "fintech-apis-every-developer-should-know", "5b0f4f0e-6f63-4c0e-9a51-0d9f1d7c0a06")
	require.NoError(t, err)
	assert.False(t, exists)

	streamed := 0
	require.NoError(t, repo.StreamAll(ctx, func(*models.Article) error {
		streamed++
		return nil
	}))
	assert.Equal(t, 6, streamed)
}

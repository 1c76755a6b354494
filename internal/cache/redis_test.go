package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/config"
)

type entry struct {
	Title string `json:"title"`
	Views int    `json:"views"`
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := NewRedis(&config.CacheConfig{Addr: srv.Addr(), TTL: time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestRedis_SetGet(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	var got entry
	gen, found, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, NamespaceArticles, gen, "page=1", entry{Title: "Hello", Views: 3}))

	again, found, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, gen, again)
	assert.Equal(t, entry{Title: "Hello", Views: 3}, got)
}

func TestRedis_InvalidateHidesEntries(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	var got entry
	articlesGen, _, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	contentGen, _, err := c.Get(ctx, NamespaceContent, "page=1", &got)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, NamespaceArticles, articlesGen, "page=1", entry{Title: "old"}))
	require.NoError(t, c.Set(ctx, NamespaceContent, contentGen, "page=1", entry{Title: "content"}))

	require.NoError(t, c.Invalidate(ctx, NamespaceArticles))

	gen, found, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	assert.False(t, found, "articles entry should be unreachable after invalidation")
	assert.Equal(t, articlesGen+1, gen)

	_, found, err = c.Get(ctx, NamespaceContent, "page=1", &got)
	require.NoError(t, err)
	assert.True(t, found, "other namespaces are untouched")
}

func TestRedis_SetUnderInvalidatedGenerationIsUnreachable(t *testing.T) {
	c, _ := newTestRedis(t)
	ctx := context.Background()

	// a reader observes the generation, then a writer invalidates before
	// the reader stores what it computed
	var got entry
	stale, found, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, c.Invalidate(ctx, NamespaceArticles))
	require.NoError(t, c.Set(ctx, NamespaceArticles, stale, "page=1", entry{Title: "stale"}))

	current, found, err := c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	assert.False(t, found, "stale page must not be served")
	assert.NotEqual(t, stale, current)

	require.NoError(t, c.Set(ctx, NamespaceArticles, current, "page=1", entry{Title: "fresh"}))
	_, found, err = c.Get(ctx, NamespaceArticles, "page=1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "fresh", got.Title)
}

func TestRedis_EntriesExpire(t *testing.T) {
	c, srv := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, NamespaceContent, 0, "k", entry{Title: "x"}))
	srv.FastForward(2 * time.Minute)

	var got entry
	_, found, err := c.Get(ctx, NamespaceContent, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_ServerDownIsError(t *testing.T) {
	c, srv := newTestRedis(t)
	srv.Close()

	var got entry
	_, _, err := c.Get(context.Background(), NamespaceContent, "k", &got)
	assert.Error(t, err)
}

func TestNewRedis_Unreachable(t *testing.T) {
	_, err := NewRedis(&config.CacheConfig{Addr: "127.0.0.1:1", TTL: time.Minute}, zerolog.Nop())
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	var got entry
	gen, found, err := c.Get(context.Background(), NamespaceArticles, "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Set(context.Background(), NamespaceArticles, gen, "k", got))
	assert.NoError(t, c.Invalidate(context.Background(), NamespaceArticles))
}

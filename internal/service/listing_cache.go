package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/metrics"
)

// listingCache fronts public listings. Cache failures are logged and
// treated as misses; they never fail a read or a write.
type listingCache struct {
	cache cache.Cache
	log   zerolog.Logger
}

func newListingCache(c cache.Cache, log zerolog.Logger) *listingCache {
	return &listingCache{
		cache: c,
		log:   log.With().Str("component", "listing_cache").Logger(),
	}
}

// lookup remembers the generation a read observed. A listing computed after
// the lookup is stored under that generation, so a write that lands in
// between makes the stored page unreachable.
type lookup struct {
	gen       int64
	cacheable bool
}

func (l *listingCache) get(ctx context.Context, namespace, key string, dest interface{}) (lookup, bool) {
	gen, found, err := l.cache.Get(ctx, namespace, key, dest)
	switch {
	case err != nil:
		metrics.CacheRequests.WithLabelValues(namespace, "error").Inc()
		l.log.Warn().Err(err).Str("namespace", namespace).Msg("Cache read failed")
		return lookup{}, false
	case found:
		metrics.CacheRequests.WithLabelValues(namespace, "hit").Inc()
		return lookup{gen: gen, cacheable: true}, true
	default:
		metrics.CacheRequests.WithLabelValues(namespace, "miss").Inc()
		return lookup{gen: gen, cacheable: true}, false
	}
}

func (l *listingCache) set(ctx context.Context, namespace string, at lookup, key string, value interface{}) {
	if !at.cacheable {
		return
	}
	if err := l.cache.Set(ctx, namespace, at.gen, key, value); err != nil {
		l.log.Warn().Err(err).Str("namespace", namespace).Msg("Cache write failed")
	}
}

// invalidate bumps the generation of every namespace after a mutation
func (l *listingCache) invalidate(ctx context.Context, namespaces ...string) {
	for _, ns := range namespaces {
		if err := l.cache.Invalidate(ctx, ns); err != nil {
			l.log.Error().Err(err).Str("namespace", ns).Msg("Cache invalidation failed")
		}
	}
}

// cacheKey encodes the parts of a listing query as a JSON array, so strings
// containing separators cannot make two different queries share a key
func cacheKey(kind string, parts ...interface{}) string {
	// parts are strings, ints and bool/string pointers, which always encode
	raw, _ := json.Marshal(append([]interface{}{kind}, parts...))
	return string(raw)
}

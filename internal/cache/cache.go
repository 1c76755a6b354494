// Package cache holds the read cache in front of public listings.
//
// Entries are namespaced and versioned: every namespace has a generation
// counter that is part of each entry key, so invalidating a namespace is a
// single INCR and stale entries simply age out under their TTL.
package cache

import (
	"context"
)

// Namespaces used by the services
const (
	NamespaceArticles = "articles"
	NamespaceContent  = "content"
	NamespaceComments = "comments"
	NamespaceReviews  = "reviews"
)

// Cache stores JSON-encoded read results
type Cache interface {
	// Get decodes the entry for key into dest and reports whether it was found,
	// along with the namespace generation the lookup read
	Get(ctx context.Context, namespace, key string, dest interface{}) (gen int64, found bool, err error)
	// Set stores value under key in generation gen of namespace. A value
	// computed before an invalidation lands in a dead generation.
	Set(ctx context.Context, namespace string, gen int64, key string, value interface{}) error
	// Invalidate makes every existing entry of namespace unreachable
	Invalidate(ctx context.Context, namespace string) error
	Close() error
}

// Nop is the cache used when Redis is not configured; every lookup misses
type Nop struct{}

var _ Cache = Nop{}

func (Nop) Get(ctx context.Context, namespace, key string, dest interface{}) (int64, bool, error) {
	return 0, false, nil
}

func (Nop) Set(ctx context.Context, namespace string, gen int64, key string, value interface{}) error {
	return nil
}

func (Nop) Invalidate(ctx context.Context, namespace string) error { return nil }

func (Nop) Close() error { return nil }

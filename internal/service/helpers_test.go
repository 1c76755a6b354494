package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/tech-hub-api/internal/cache"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/mocks"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/service"
)

// recordingSender keeps every message it is asked to send
type recordingSender struct {
	mu   sync.Mutex
	sent []*email.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg *email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *recordingSender) Sent() []*email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*email.Message(nil), s.sent...)
}

func testConfig() *config.Config {
	return &config.Config{
		Email: config.EmailConfig{AdminNotify: "admin@example.com", SendTimeout: time.Second},
		Views: config.ViewsConfig{QueueSize: 8, Workers: 2, Timeout: time.Second},
	}
}

type fixture struct {
	svc    *service.Services
	repos  *repository.Repositories
	sender *recordingSender
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, cache.Nop{})
}

func newFixtureWithCache(t *testing.T, c cache.Cache) *fixture {
	t.Helper()
	repos := mocks.NewRepositories()
	sender := &recordingSender{}
	svc := service.NewServices(repos, testConfig(), service.Deps{Cache: c, Email: sender}, zerolog.Nop())
	return &fixture{svc: svc, repos: repos, sender: sender}
}

// newRedisCache runs the listing cache against an in-process Redis
func newRedisCache(t *testing.T) *cache.Redis {
	t.Helper()
	srv := miniredis.RunT(t)
	c, err := cache.NewRedis(&config.CacheConfig{Addr: srv.Addr(), TTL: time.Minute}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func (f *fixture) articles() *mocks.MockArticleRepository {
	return f.repos.Article.(*mocks.MockArticleRepository)
}

func (f *fixture) comments() *mocks.MockCommentRepository {
	return f.repos.Comment.(*mocks.MockCommentRepository)
}

func (f *fixture) subscribers() *mocks.MockSubscriberRepository {
	return f.repos.Subscriber.(*mocks.MockSubscriberRepository)
}

// seedArticle stores an article directly in the mock
func (f *fixture) seedArticle(id, title, category string, status models.PublicationStatus, published time.Time) *models.Article {
	a := &models.Article{
		ID:           id,
		Title:        title,
		Slug:         id,
		Content:      title + " body",
		CategorySlug: category,
		Status:       status,
		ReadingTime:  1,
		CreatedAt:    published,
		UpdatedAt:    published,
	}
	if status == models.StatusPublished {
		p := published
		a.PublishedAt = &p
	}
	f.articles().Articles[id] = a
	return a
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/repository"
)

// viewService drains a bounded queue of article ids with a fixed worker pool.
// Enqueue never blocks: when the queue is full the view is dropped and counted.
// Repeat views from the same visitor are all counted.
type viewService struct {
	repo    repository.ArticleRepository
	queue   chan string
	workers int
	timeout time.Duration
	log     zerolog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

func newViewService(repo repository.ArticleRepository, cfg *config.ViewsConfig, log zerolog.Logger) *viewService {
	queueSize, workers := cfg.QueueSize, cfg.Workers
	if queueSize < 1 {
		queueSize = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &viewService{
		repo:    repo,
		queue:   make(chan string, queueSize),
		workers: workers,
		timeout: cfg.Timeout,
		log:     log.With().Str("service", "views").Logger(),
	}
}

// Enqueue records a view for later application and reports whether it was accepted
func (s *viewService) Enqueue(articleID string) bool {
	select {
	case s.queue <- articleID:
		metrics.ViewEvents.WithLabelValues("enqueued").Inc()
		metrics.ViewQueueDepth.Set(float64(len(s.queue)))
		return true
	default:
		metrics.ViewEvents.WithLabelValues("dropped").Inc()
		s.log.Warn().Str("article_id", articleID).Msg("View queue full, dropping view")
		return false
	}
}

// Start launches the workers; calling it again while running is a no-op
func (s *viewService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	s.log.Info().Int("workers", s.workers).Int("queue_size", cap(s.queue)).Msg("View counter started")
}

// Stop stops the workers and applies whatever is still queued
func (s *viewService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false

	flushed := 0
	for {
		select {
		case id := <-s.queue:
			s.apply(id)
			flushed++
		default:
			metrics.ViewQueueDepth.Set(0)
			s.log.Info().Int("flushed", flushed).Msg("View counter stopped")
			return
		}
	}
}

func (s *viewService) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			return
		case id := <-s.queue:
			metrics.ViewQueueDepth.Set(float64(len(s.queue)))
			s.apply(id)
		}
	}
}

// apply runs one increment; it outlives request cancellation but not its own timeout
func (s *viewService) apply(articleID string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.ViewEvents.WithLabelValues("failed").Inc()
			s.log.Error().Interface("panic", r).Str("article_id", articleID).Msg("View increment panicked - recovered")
		}
	}()

	timeout := s.timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.repo.IncrementViews(ctx, articleID); err != nil {
		metrics.ViewEvents.WithLabelValues("failed").Inc()
		s.log.Warn().Err(err).Str("article_id", articleID).Msg("View increment failed")
		return
	}
	metrics.ViewEvents.WithLabelValues("applied").Inc()
}

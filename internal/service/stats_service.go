package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
)

// statsService is the concrete implementation of StatsService
type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

// Dashboard collects the counters shown on the admin dashboard
func (s *statsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var (
		stats models.DashboardStats
		err   error
	)

	if stats.Articles, err = s.repos.Article.CountByStatus(ctx); err != nil {
		return nil, storeError(s.log, "stats", "count articles", err)
	}
	if stats.Content, err = s.repos.Content.Count(ctx); err != nil {
		return nil, storeError(s.log, "stats", "count content", err)
	}
	if stats.PendingComments, err = s.repos.Comment.CountByStatus(ctx, models.CommentPending); err != nil {
		return nil, storeError(s.log, "stats", "count comments", err)
	}
	if stats.PendingReviews, err = s.repos.Review.CountByStatus(ctx, models.ReviewPending); err != nil {
		return nil, storeError(s.log, "stats", "count reviews", err)
	}
	if stats.ActiveSubscribers, err = s.repos.Subscriber.CountByStatus(ctx, models.SubscriberActive); err != nil {
		return nil, storeError(s.log, "stats", "count subscribers", err)
	}
	if stats.NewContactMessages, err = s.repos.Contact.CountByStatus(ctx, models.ContactNew); err != nil {
		return nil, storeError(s.log, "stats", "count contact messages", err)
	}

	return &stats, nil
}

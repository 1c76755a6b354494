package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/metrics"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/validation"
)

// ErrAlreadySubscribed is returned when an active subscriber signs up again
var ErrAlreadySubscribed = apperror.Conflict("already_subscribed", "this email is already subscribed")

// newsletterService is the concrete implementation of NewsletterService
type newsletterService struct {
	repo   repository.SubscriberRepository
	mailer *notifier
	log    zerolog.Logger
}

func newNewsletterService(repo repository.SubscriberRepository, sender email.Sender, cfg *config.EmailConfig, log zerolog.Logger) *newsletterService {
	log = log.With().Str("service", "newsletter").Logger()
	return &newsletterService{
		repo:   repo,
		mailer: &notifier{sender: sender, timeout: cfg.SendTimeout, log: log},
		log:    log,
	}
}

// Subscribe creates a subscriber or reactivates an unsubscribed one, keeping
// its id. The unique email constraint decides races between concurrent signups.
func (s *newsletterService) Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.Subscriber, error) {
	if err := validation.ValidateSubscribeRequest(req); err != nil {
		return nil, err
	}

	emailAddr := strings.ToLower(strings.TrimSpace(req.Email))
	source := strings.TrimSpace(req.Source)
	if source == "" {
		source = models.DefaultSubscriberSource
	}

	existing, err := s.repo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, storeError(s.log, "subscriber", "get subscriber", err)
	}

	var sub *models.Subscriber
	if existing != nil {
		sub, err = s.reactivate(ctx, existing, req.Name, source)
	} else {
		sub, err = s.create(ctx, emailAddr, req.Name, source)
	}
	if err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			metrics.NewsletterSignups.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}

	s.mailer.send(ctx, "welcome", func() (*email.Message, error) { return email.WelcomeEmail(sub) })
	return sub, nil
}

func (s *newsletterService) create(ctx context.Context, emailAddr, name, source string) (*models.Subscriber, error) {
	now := time.Now().UTC()
	sub := &models.Subscriber{
		ID:        uuid.New().String(),
		Email:     emailAddr,
		Name:      strings.TrimSpace(name),
		Status:    models.SubscriberActive,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.repo.Create(ctx, sub)
	if errors.Is(err, repository.ErrConflict) {
		// A concurrent signup inserted the row first
		existing, getErr := s.repo.GetByEmail(ctx, emailAddr)
		if getErr != nil {
			return nil, storeError(s.log, "subscriber", "get subscriber", getErr)
		}
		if existing == nil {
			return nil, storeError(s.log, "subscriber", "create subscriber", err)
		}
		return s.reactivate(ctx, existing, name, source)
	}
	if err != nil {
		return nil, storeError(s.log, "subscriber", "create subscriber", err)
	}

	metrics.NewsletterSignups.WithLabelValues("created").Inc()
	s.log.Info().Str("subscriber_id", sub.ID).Str("source", sub.Source).Msg("Subscriber created")
	return sub, nil
}

func (s *newsletterService) reactivate(ctx context.Context, sub *models.Subscriber, name, source string) (*models.Subscriber, error) {
	if sub.Status == models.SubscriberActive {
		return nil, ErrAlreadySubscribed
	}

	sub.Status = models.SubscriberActive
	sub.Source = source
	if name = strings.TrimSpace(name); name != "" {
		sub.Name = name
	}
	sub.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, storeError(s.log, "subscriber", "update subscriber", err)
	}

	metrics.NewsletterSignups.WithLabelValues("reactivated").Inc()
	s.log.Info().Str("subscriber_id", sub.ID).Msg("Subscriber reactivated")
	return sub, nil
}

// Unsubscribe marks a subscriber unsubscribed; repeating it is harmless
func (s *newsletterService) Unsubscribe(ctx context.Context, req *models.UnsubscribeRequest) (*models.Subscriber, error) {
	if err := validation.ValidateUnsubscribeRequest(req); err != nil {
		return nil, err
	}

	sub, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, storeError(s.log, "subscriber", "get subscriber", err)
	}
	if sub == nil {
		return nil, apperror.NotFound("subscriber")
	}
	if sub.Status == models.SubscriberUnsubscribed {
		return sub, nil
	}

	sub.Status = models.SubscriberUnsubscribed
	sub.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, storeError(s.log, "subscriber", "update subscriber", err)
	}

	metrics.NewsletterSignups.WithLabelValues("unsubscribed").Inc()
	s.log.Info().Str("subscriber_id", sub.ID).Msg("Subscriber unsubscribed")
	return sub, nil
}

// List returns one page of subscribers for the admin dashboard
func (s *newsletterService) List(ctx context.Context, status string, limit, offset int) (*models.Page[models.Subscriber], error) {
	if err := validation.ValidateSubscriberStatus(status); err != nil {
		return nil, err
	}

	filter := models.SubscriberFilter{}
	if status != "" {
		st := models.SubscriberStatus(status)
		filter.Status = &st
	}
	filter.Limit, filter.Offset = window(limit, offset)

	subs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "subscriber", "list subscribers", err)
	}
	return newPage(subs, total, filter.Limit, filter.Offset), nil
}

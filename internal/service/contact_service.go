package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/apperror"
	"github.com/tech-hub-api/internal/config"
	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/models"
	"github.com/tech-hub-api/internal/repository"
	"github.com/tech-hub-api/internal/validation"
)

// contactService is the concrete implementation of ContactService
type contactService struct {
	repo        repository.ContactRepository
	sanitizer   *validation.Sanitizer
	mailer      *notifier
	adminNotify string
	log         zerolog.Logger
}

func newContactService(repo repository.ContactRepository, sender email.Sender, sanitizer *validation.Sanitizer, cfg *config.EmailConfig, log zerolog.Logger) *contactService {
	log = log.With().Str("service", "contact").Logger()
	return &contactService{
		repo:        repo,
		sanitizer:   sanitizer,
		mailer:      &notifier{sender: sender, timeout: cfg.SendTimeout, log: log},
		adminNotify: cfg.AdminNotify,
		log:         log,
	}
}

// Submit stores a contact message and notifies the site admin
func (s *contactService) Submit(ctx context.Context, req *models.ContactRequest) (*models.ContactMessage, error) {
	if err := validation.ValidateContactRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	msg := &models.ContactMessage{
		ID:        uuid.New().String(),
		Name:      s.sanitizer.Plain(req.Name),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   s.sanitizer.Plain(req.Subject),
		Message:   s.sanitizer.Plain(req.Message),
		Status:    models.ContactNew,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if msg.Name == "" || msg.Message == "" {
		fields := map[string]string{}
		if msg.Name == "" {
			fields["name"] = "cannot be blank"
		}
		if msg.Message == "" {
			fields["message"] = "cannot be blank"
		}
		return nil, apperror.InvalidInput("validation failed", fields)
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, storeError(s.log, "contact_message", "create contact message", err)
	}
	s.log.Info().Str("message_id", msg.ID).Msg("Contact message received")

	if s.adminNotify != "" {
		s.mailer.send(ctx, "contact", func() (*email.Message, error) {
			return email.ContactNotification(s.adminNotify, msg)
		})
	}
	return msg, nil
}

// List returns one page of contact messages, newest first
func (s *contactService) List(ctx context.Context, status string, limit, offset int) (*models.Page[models.ContactMessage], error) {
	statusFilter, err := enumFilter(status, models.ValidContactStatuses)
	if err != nil {
		return nil, err
	}

	filter := models.ContactFilter{Status: statusFilter}
	filter.Limit, filter.Offset = window(limit, offset)

	msgs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, storeError(s.log, "contact_message", "list contact messages", err)
	}
	return newPage(msgs, total, filter.Limit, filter.Offset), nil
}

// UpdateStatus marks a message new, read or archived
func (s *contactService) UpdateStatus(ctx context.Context, id string, u *models.ContactStatusUpdate) (*models.ContactMessage, error) {
	if err := validation.ValidateContactStatusUpdate(u); err != nil {
		return nil, err
	}
	if !isID(id) {
		return nil, apperror.NotFound("contact_message")
	}

	msg, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(s.log, "contact_message", "get contact message", err)
	}
	if msg == nil {
		return nil, apperror.NotFound("contact_message")
	}

	msg.Status = models.ContactStatus(u.Status)
	msg.UpdatedAt = time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, msg.ID, msg.Status, msg.UpdatedAt); err != nil {
		return nil, storeError(s.log, "contact_message", "update contact message", err)
	}
	return msg, nil
}

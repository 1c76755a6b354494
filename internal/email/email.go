// Package email sends transactional mail through Resend.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/config"
)

// ErrNoRecipient is returned for messages without a recipient
var ErrNoRecipient = errors.New("email has no recipient")

// Message is an outbound HTML email
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Sender delivers email
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// New returns a Resend sender, or a no-op sender when no API key is configured
func New(cfg *config.EmailConfig, log zerolog.Logger) Sender {
	if cfg.APIKey == "" {
		log.Warn().Msg("RESEND_API_KEY not set, outbound email disabled")
		return NewNopSender(log)
	}
	return NewResendSender(resend.NewClient(cfg.APIKey), cfg.From, log)
}

// ResendSender delivers email through the Resend API
type ResendSender struct {
	client *resend.Client
	from   string
	log    zerolog.Logger
}

// NewResendSender creates a sender from an existing Resend client
func NewResendSender(client *resend.Client, from string, log zerolog.Logger) *ResendSender {
	return &ResendSender{
		client: client,
		from:   from,
		log:    log.With().Str("component", "email").Logger(),
	}
}

// Send delivers msg; ctx bounds the API call
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}

	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	s.log.Debug().Str("email_id", sent.Id).Str("subject", msg.Subject).Msg("Email sent")
	return nil
}

// NopSender drops every message
type NopSender struct {
	log zerolog.Logger
}

// NewNopSender creates a sender that only logs
func NewNopSender(log zerolog.Logger) NopSender {
	return NopSender{log: log.With().Str("component", "email").Logger()}
}

// Send logs and discards msg
func (s NopSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}
	s.log.Debug().Str("subject", msg.Subject).Msg("Email disabled, message dropped")
	return nil
}

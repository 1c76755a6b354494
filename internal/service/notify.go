package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/email"
	"github.com/tech-hub-api/internal/metrics"
)

// notifier sends best-effort transactional mail. The send runs detached from
// the request's cancellation but bounded by its own timeout, and failures are
// only logged and counted.
type notifier struct {
	sender  email.Sender
	timeout time.Duration
	log     zerolog.Logger
}

func (n *notifier) send(ctx context.Context, kind string, build func() (*email.Message, error)) bool {
	msg, err := build()
	if err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failed").Inc()
		n.log.Error().Err(err).Str("kind", kind).Msg("Failed to build email")
		return false
	}

	timeout := n.timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := n.sender.Send(sendCtx, msg); err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failed").Inc()
		n.log.Warn().Err(err).Str("kind", kind).Msg("Email delivery failed")
		return false
	}
	metrics.EmailsSent.WithLabelValues(kind, "sent").Inc()
	return true
}

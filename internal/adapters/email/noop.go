package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs emails instead of sending them. Used in development and
// tests when no Resend API key is configured.
type NoopSender struct{}

// NewNoopSender creates a no-op sender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the email and returns a fake message ID.
// POST: no email leaves the process
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("noop_email", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/shop-service/internal/config"
)

// Mailer delivers outbound email. Delivery is an external collaborator;
// the auth and order flows depend only on this interface.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// LogMailer is the development implementation: it records the mail
// instead of delivering it.
type LogMailer struct {
	logger *zap.Logger
	from   string
}

// NewLogMailer creates the mailer.
func NewLogMailer(logger *zap.Logger, cfg config.MailConfig) *LogMailer {
	return &LogMailer{logger: logger, from: cfg.From}
}

// Send logs the message and reports success.
func (m *LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.logger.Info("outbound email",
		zap.String("from", m.from),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(htmlBody)),
	)
	return nil
}

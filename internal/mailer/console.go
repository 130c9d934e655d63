package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/config"
)

// ConsoleMailer logs messages instead of delivering them. Used in
// development and tests.
type ConsoleMailer struct {
	from   string
	logger *zap.Logger
}

// NewConsoleMailer builds the console backend.
func NewConsoleMailer(cfg config.MailConfig, logger *zap.Logger) *ConsoleMailer {
	return &ConsoleMailer{from: cfg.FromAddress, logger: logger}
}

// Send writes the message to the log.
func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("outbound email",
		zap.String("from", m.from),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}

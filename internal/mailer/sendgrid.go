package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/config"
)

// SendgridMailer delivers mail through the Sendgrid API.
type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendgridMailer builds the Sendgrid backend.
func NewSendgridMailer(cfg config.MailConfig, logger *zap.Logger) *SendgridMailer {
	return &SendgridMailer{
		client: sendgrid.NewSendClient(cfg.SendgridAPIKey),
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger,
	}
}

// Send delivers a single plain-text message.
func (m *SendgridMailer) Send(_ context.Context, msg Message) error {
	mail := sgmail.NewSingleEmail(m.from, msg.Subject, sgmail.NewEmail("", msg.To), msg.Body, "")
	resp, err := m.client.Send(mail)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		m.logger.Error("sendgrid rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("to", msg.To))
		return fmt.Errorf("sendgrid send: status %d", resp.StatusCode)
	}
	return nil
}

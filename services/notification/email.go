package notification

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailSender delivers a single email.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
	HTML    string
}

// SendGridSender sends emails via the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *zap.Logger
}

// NewSendGridSender returns nil when apiKey is empty so callers can fall back to the stub.
func NewSendGridSender(apiKey, fromEmail, fromName string, logger *zap.Logger) *SendGridSender {
	if apiKey == "" {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if fromName == "" {
		fromName = "Digibook"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notification: sendgrid client not configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(msg.ToName, msg.To)
	html := msg.HTML
	if html == "" {
		html = msg.Body
	}
	message := mail.NewSingleEmail(from, msg.Subject, to, msg.Body, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("SendGrid send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("notification: sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		s.logger.Error("SendGrid returned error status",
			zap.Int("status", response.StatusCode),
			zap.String("body", response.Body),
			zap.String("to", msg.To))
		return fmt.Errorf("notification: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("Email sent via SendGrid", zap.String("to", msg.To), zap.Int("status", response.StatusCode))
	return nil
}

// StubEmailSender logs instead of sending.
type StubEmailSender struct {
	logger *zap.Logger
}

func NewStubEmailSender(logger *zap.Logger) *StubEmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubEmailSender{logger: logger}
}

func (s *StubEmailSender) Send(_ context.Context, msg EmailMessage) error {
	s.logger.Info("Stub email sender: would send email", zap.String("to", msg.To), zap.String("subject", msg.Subject))
	return nil
}

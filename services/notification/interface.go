package notification

import (
	"context"
	"fmt"
	"strings"

	"digibook/models"

	"go.uber.org/zap"
)

// NotificationService tells the studio about bookings that skipped the payment gateway.
type NotificationService interface {
	NotifyHandoff(ctx context.Context, payload models.HandoffPayload) error
}

// DefaultNotificationService emails the studio inbox.
type DefaultNotificationService struct {
	sender      EmailSender
	studioEmail string
	logger      *zap.Logger
}

func NewDefaultNotificationService(sender EmailSender, studioEmail string, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification service initialization error: email sender is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{sender: sender, studioEmail: studioEmail, logger: logger}, nil
}

// NotifyHandoff sends the booking summary to the studio. Without a studio address it only logs.
func (s *DefaultNotificationService) NotifyHandoff(ctx context.Context, p models.HandoffPayload) error {
	if s.studioEmail == "" {
		s.logger.Warn("No studio email configured, skipping handoff email", zap.String("bookingID", p.BookingID))
		return nil
	}

	msg := EmailMessage{
		To:      s.studioEmail,
		ToName:  "Studio",
		Subject: fmt.Sprintf("New %s request from %s", p.Service, p.CustomerName),
		Body:    handoffBody(p),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("NotifyHandoff: booking %s: %w", p.BookingID, err)
	}
	s.logger.Info("Handoff email sent", zap.String("bookingID", p.BookingID), zap.String("channel", p.Channel))
	return nil
}

func handoffBody(p models.HandoffPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking %s was submitted over %s.\n\n", p.BookingID, p.Channel)
	b.WriteString(p.Summary)
	if p.Link != "" {
		fmt.Fprintf(&b, "\n\nReply link: %s\n", p.Link)
	}
	return b.String()
}

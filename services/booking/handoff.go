package booking

import (
	"context"
	"net/url"
	"strings"

	"digibook/models"
	"digibook/services/payment"
	"digibook/services/tasks"
	"digibook/services/wizard"

	"go.uber.org/zap"
)

// HandoffResult is what the client needs to continue the conversation over messaging.
type HandoffResult struct {
	BookingID string  `json:"bookingId"`
	Status    string  `json:"status"`
	Channel   string  `json:"channel"`
	Link      string  `json:"link,omitempty"`
	Summary   string  `json:"summary"`
	Review    *Review `json:"review"`
}

// SubmitHandoff stores the booking as pending without a gateway and queues the studio notification.
func (s *DefaultBookingService) SubmitHandoff(ctx context.Context, record *wizard.Record) (*HandoffResult, error) {
	log := s.logger()
	if record == nil || record.Service == "" || strings.TrimSpace(record.ContactInfo.Name) == "" {
		return nil, ErrIncompleteHandoff
	}

	review := s.BuildReview(record)
	var amount int64
	if review.Quote != nil {
		amount = review.Quote.MinorUnits()
	}

	booking := payment.NewBookingFromRecord(record, amount, s.currency(), models.ChannelMessaging)
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, &payment.PersistenceError{Op: "create booking", Err: err}
	}

	channel := record.ContactInfo.PreferredContact
	if channel == "" {
		channel = wizard.ChannelWhatsApp
	}
	summary := review.Summary(booking.ID)
	link := WhatsAppLink(s.WhatsAppNumber, summary)

	payload := models.HandoffPayload{
		BookingID:    booking.ID,
		Service:      review.ServiceName,
		CustomerName: record.ContactInfo.Name,
		Channel:      channel,
		Summary:      summary,
		Link:         link,
	}
	s.enqueueHandoff(ctx, payload)

	if err := s.Repo.LogEvent(ctx, models.PaymentLog{
		BookingID: booking.ID,
		EventType: models.LogHandoffSubmitted,
		EventData: map[string]interface{}{"channel": channel, "amount": amount},
	}); err != nil {
		log.Warn("Failed to write handoff log", zap.String("bookingID", booking.ID), zap.Error(err))
	}
	s.Metrics.ObserveHandoff(channel)
	log.Info("Booking handed off to messaging",
		zap.String("bookingID", booking.ID),
		zap.String("service", booking.Service),
		zap.String("channel", channel))

	return &HandoffResult{
		BookingID: booking.ID,
		Status:    booking.Status,
		Channel:   channel,
		Link:      link,
		Summary:   summary,
		Review:    review,
	}, nil
}

// enqueueHandoff is best effort: the booking is already stored and the customer has the link.
func (s *DefaultBookingService) enqueueHandoff(ctx context.Context, payload models.HandoffPayload) {
	if s.Queue == nil {
		return
	}
	task, opts, err := tasks.NewHandoffTask(payload)
	if err != nil {
		s.logger().Error("Failed to build handoff task", zap.String("bookingID", payload.BookingID), zap.Error(err))
		return
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		s.logger().Error("Failed to enqueue handoff task", zap.String("bookingID", payload.BookingID), zap.Error(err))
	}
}

// WhatsAppLink builds a wa.me deep link with a prefilled message. Empty when no number is configured.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

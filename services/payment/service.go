package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	bookingRepo "digibook/database/repository/booking"
	"digibook/metrics"
	"digibook/models"
	"digibook/services/pricing"
	"digibook/services/wizard"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentService turns completed wizard records into paid bookings.
type PaymentService interface {
	CreateCheckout(ctx context.Context, record *wizard.Record) (*CheckoutResult, error)
	VerifyPayment(ctx context.Context, bookingID string) (*VerificationResult, error)
	HandleWebhook(ctx context.Context, payload []byte, header http.Header) (*WebhookResult, error)
}

// CheckoutResult is returned to the client so it can redirect to the gateway.
type CheckoutResult struct {
	BookingID        string `json:"bookingId"`
	PaymentID        string `json:"paymentId"`
	CheckoutURL      string `json:"checkoutUrl"`
	Gateway          string `json:"gateway"`
	Amount           int64  `json:"amount"`
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	Currency         string `json:"currency"`
}

// VerificationResult reports a booking's status after re-reading the gateway.
type VerificationResult struct {
	BookingID     string        `json:"bookingId"`
	Status        string        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	Amount        float64       `json:"amount"`
	Currency      string        `json:"currency"`
	Changed       bool          `json:"changed"`
}

// WebhookResult summarizes a processed webhook.
type WebhookResult struct {
	BookingID string `json:"bookingId,omitempty"`
	EventType string `json:"eventType"`
	Status    string `json:"status,omitempty"`
	Changed   bool   `json:"changed"`
	Ignored   bool   `json:"ignored,omitempty"`
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Repo      bookingRepo.BookingRepository
	Gateway   Gateway
	PublicURL string
	Currency  string
	Metrics   *metrics.BookingMetrics
	Logger    *zap.Logger
}

func (s *DefaultPaymentService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *DefaultPaymentService) currency() string {
	if s.Currency == "" {
		return pricing.DefaultCurrency
	}
	return s.Currency
}

func (s *DefaultPaymentService) returnURL(path, bookingID string) string {
	base := strings.TrimRight(s.PublicURL, "/")
	return fmt.Sprintf("%s%s?booking_id=%s", base, path, url.QueryEscape(bookingID))
}

// NewBookingFromRecord snapshots a record into a pending booking row.
func NewBookingFromRecord(record *wizard.Record, amountMinor int64, currency, channel string) *models.Booking {
	snapshot := record.Clone()
	files := snapshot.Files
	if !wizard.NeedsFiles(snapshot.Service) {
		files = []models.FileDescriptor{}
	}
	return &models.Booking{
		ID:               uuid.New().String(),
		Service:          snapshot.Service,
		ServiceDetails:   snapshot.ServiceDetails,
		ContactInfo:      snapshot.ContactInfo,
		Files:            files,
		AmountMinorUnits: amountMinor,
		Currency:         currency,
		Status:           models.StatusPending,
		Channel:          channel,
		CreatedAt:        time.Now().UTC(),
	}
}

// CreateCheckout prices the record server-side, stores a pending booking and opens a hosted checkout.
func (s *DefaultPaymentService) CreateCheckout(ctx context.Context, record *wizard.Record) (*CheckoutResult, error) {
	log := s.logger()
	if record == nil || record.Service == "" || record.ContactInfo.Email == "" {
		return nil, ErrIncompleteBooking
	}

	quote, err := pricing.ForRecord(record)
	if err != nil {
		return nil, err
	}

	booking := NewBookingFromRecord(record, quote.MinorUnits(), s.currency(), models.ChannelGateway)
	booking.Gateway = s.Gateway.Name()
	if err := s.Repo.Create(ctx, booking); err != nil {
		return nil, &PersistenceError{Op: "create booking", Err: err}
	}

	checkout, err := s.Gateway.CreateCheckout(ctx, CheckoutParams{
		AmountMinorUnits: booking.AmountMinorUnits,
		Currency:         booking.Currency,
		CustomerEmail:    booking.ContactInfo.Email,
		Description:      fmt.Sprintf("%s - %s", wizard.DisplayName(booking.Service), booking.ContactInfo.Name),
		SuccessURL:       s.returnURL("/payment/success", booking.ID),
		CancelURL:        s.returnURL("/payment/cancel", booking.ID),
		Metadata: map[string]string{
			"booking_id":     booking.ID,
			"service":        booking.Service,
			"customer_name":  booking.ContactInfo.Name,
			"customer_phone": booking.ContactInfo.Phone,
		},
	})
	if err != nil {
		s.Metrics.ObserveCheckout(s.Gateway.Name(), "gateway_error")
		log.Error("Checkout creation failed", zap.String("bookingID", booking.ID), zap.Error(err))
		s.logEvent(ctx, booking.ID, models.LogPaymentCreationError, map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	if err := s.Repo.AttachPayment(ctx, booking.ID, s.Gateway.Name(), checkout.PaymentID, checkout.CheckoutURL); err != nil {
		// The checkout exists; webhooks can still resolve the booking through metadata.
		log.Error("Failed to attach payment to booking", zap.String("bookingID", booking.ID), zap.Error(err))
	}
	s.logEvent(ctx, booking.ID, models.LogPaymentCreated, map[string]interface{}{
		"payment_id": checkout.PaymentID,
		"gateway":    s.Gateway.Name(),
		"amount":     booking.AmountMinorUnits,
		"currency":   booking.Currency,
	})
	s.Metrics.ObserveCheckout(s.Gateway.Name(), "created")
	log.Info("Checkout created",
		zap.String("bookingID", booking.ID),
		zap.String("paymentID", checkout.PaymentID),
		zap.Int64("amount", booking.AmountMinorUnits))

	return &CheckoutResult{
		BookingID:        booking.ID,
		PaymentID:        checkout.PaymentID,
		CheckoutURL:      checkout.CheckoutURL,
		Gateway:          s.Gateway.Name(),
		Amount:           quote.Price,
		AmountMinorUnits: booking.AmountMinorUnits,
		Currency:         booking.Currency,
	}, nil
}

// VerifyPayment re-reads the gateway status and stores it when it differs.
func (s *DefaultPaymentService) VerifyPayment(ctx context.Context, bookingID string) (*VerificationResult, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Op: "load booking", Err: err}
	}

	result := &VerificationResult{
		BookingID: booking.ID,
		Status:    booking.Status,
		Amount:    float64(booking.AmountMinorUnits) / 100,
		Currency:  booking.Currency,
	}
	if booking.GatewayPaymentID == "" {
		return result, nil
	}

	status, err := s.Gateway.RetrieveStatus(ctx, booking.GatewayPaymentID)
	if err != nil {
		return nil, err
	}
	result.PaymentStatus = status

	next := bookingStatusForPayment(status, booking.Status)
	if next != booking.Status {
		if err := s.Repo.UpdateStatus(ctx, booking.ID, next); err != nil {
			return nil, &PersistenceError{Op: "update status", Err: err}
		}
		s.logEvent(ctx, booking.ID, models.LogStatusVerified, map[string]interface{}{
			"from":           booking.Status,
			"to":             next,
			"payment_status": string(status),
		})
		s.Metrics.ObserveStatusChange(next)
		result.Status = next
		result.Changed = true
	}
	return result, nil
}

// HandleWebhook authenticates a gateway callback and applies it to the matching booking.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, header http.Header) (*WebhookResult, error) {
	log := s.logger()
	started := time.Now()
	gateway := s.Gateway.Name()
	defer func() { s.Metrics.ObserveWebhookLatency(gateway, time.Since(started).Seconds()) }()

	event, err := s.Gateway.ParseWebhook(payload, header)
	if err != nil {
		s.Metrics.ObserveWebhook(gateway, "unknown", "rejected")
		return nil, err
	}
	if event.Ignored {
		s.Metrics.ObserveWebhook(gateway, event.Type, "ignored")
		log.Debug("Ignoring webhook event", zap.String("type", event.Type))
		return &WebhookResult{EventType: event.Type, Ignored: true}, nil
	}

	booking, err := s.findWebhookBooking(ctx, event)
	if err != nil {
		outcome := "error"
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			outcome = "not_found"
		}
		s.Metrics.ObserveWebhook(gateway, event.Type, outcome)
		return nil, err
	}

	data := event.Raw
	if data == nil {
		data = map[string]interface{}{}
	}
	s.logEvent(ctx, booking.ID, event.Type, data)

	result := &WebhookResult{BookingID: booking.ID, EventType: event.Type, Status: booking.Status}
	next := bookingStatusForEvent(event.Type, booking.Status)
	if next != booking.Status {
		if err := s.Repo.UpdateStatus(ctx, booking.ID, next); err != nil {
			s.Metrics.ObserveWebhook(gateway, event.Type, "error")
			return nil, &PersistenceError{Op: "update status", Err: err}
		}
		s.Metrics.ObserveStatusChange(next)
		result.Status = next
		result.Changed = true
		log.Info("Booking status updated from webhook",
			zap.String("bookingID", booking.ID),
			zap.String("from", booking.Status),
			zap.String("to", next))
	}
	s.Metrics.ObserveWebhook(gateway, event.Type, "processed")
	return result, nil
}

func (s *DefaultPaymentService) findWebhookBooking(ctx context.Context, event *WebhookEvent) (*models.Booking, error) {
	booking, err := s.Repo.GetByGatewayPaymentID(ctx, event.Data.ID)
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, &PersistenceError{Op: "find booking", Err: err}
	}

	if id := event.Data.Metadata["booking_id"]; id != "" {
		booking, err = s.Repo.GetByID(ctx, id)
		if err == nil {
			return booking, nil
		}
		if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, &PersistenceError{Op: "find booking", Err: err}
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

// logEvent writes an audit row; failures are logged and swallowed.
func (s *DefaultPaymentService) logEvent(ctx context.Context, bookingID, eventType string, data map[string]interface{}) {
	err := s.Repo.LogEvent(ctx, models.PaymentLog{
		BookingID: bookingID,
		EventType: eventType,
		EventData: data,
	})
	if err != nil {
		s.logger().Warn("Failed to write payment log",
			zap.String("bookingID", bookingID),
			zap.String("eventType", eventType),
			zap.Error(err))
	}
}

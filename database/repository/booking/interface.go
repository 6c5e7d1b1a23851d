package bookingRepo

import (
	"context"
	"errors"

	"digibook/models"
)

var ErrBookingNotFound = errors.New("booking not found")

// ListFilter narrows admin listings. Zero values match everything.
type ListFilter struct {
	Status  string
	Service string
	Limit   int64
}

// BookingRepository persists bookings and their payment audit trail.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByGatewayPaymentID(ctx context.Context, paymentID string) (*models.Booking, error)
	AttachPayment(ctx context.Context, id, gateway, paymentID, checkoutURL string) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, filter ListFilter) ([]models.Booking, error)

	LogEvent(ctx context.Context, entry models.PaymentLog) error
	GetLogs(ctx context.Context, bookingID string) ([]models.PaymentLog, error)
}

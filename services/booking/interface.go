package booking

import (
	"context"

	bookingRepo "digibook/database/repository/booking"
	"digibook/metrics"
	"digibook/models"
	"digibook/services/wizard"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingService covers everything around a booking that does not touch a payment gateway.
type BookingService interface {
	GetAvailableServices() []ServiceOffer
	BuildReview(record *wizard.Record) *Review
	SubmitHandoff(ctx context.Context, record *wizard.Record) (*HandoffResult, error)
	GetBooking(ctx context.Context, id string) (*BookingDetail, error)
	ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error)
}

// TaskEnqueuer is the subset of *asynq.Client used for handoff notifications.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo           bookingRepo.BookingRepository
	Queue          TaskEnqueuer
	WhatsAppNumber string
	Currency       string
	Metrics        *metrics.BookingMetrics
	Logger         *zap.Logger
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

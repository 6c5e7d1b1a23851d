package booking

import (
	"context"
	"errors"

	bookingRepo "digibook/database/repository/booking"
	"digibook/models"
	"digibook/services/payment"
)

// BookingDetail is a booking with its audit trail.
type BookingDetail struct {
	Booking *models.Booking     `json:"booking"`
	Logs    []models.PaymentLog `json:"logs"`
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*BookingDetail, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, err
		}
		return nil, &payment.PersistenceError{Op: "load booking", Err: err}
	}
	logs, err := s.Repo.GetLogs(ctx, id)
	if err != nil {
		return nil, &payment.PersistenceError{Op: "load payment logs", Err: err}
	}
	return &BookingDetail{Booking: b, Logs: logs}, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	if filter.Status != "" && !models.IsValidStatus(filter.Status) {
		return nil, models.ErrInvalidStatus
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	bookings, err := s.Repo.List(ctx, filter)
	if err != nil {
		return nil, &payment.PersistenceError{Op: "list bookings", Err: err}
	}
	return bookings, nil
}

package bookingRepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"digibook/models"

	"github.com/google/uuid"
)

// MemoryBookingRepo is an in-process BookingRepository for local runs and tests.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	logs     []models.PaymentLog
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{bookings: map[string]models.Booking{}}
}

func (r *MemoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if _, exists := r.bookings[booking.ID]; exists {
		return fmt.Errorf("duplicate booking id %s", booking.ID)
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepo) GetByGatewayPaymentID(_ context.Context, paymentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if paymentID == "" {
		return nil, ErrBookingNotFound
	}
	for _, b := range r.bookings {
		if b.GatewayPaymentID == paymentID {
			return &b, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *MemoryBookingRepo) modify(id string, fn func(b *models.Booking)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	fn(&b)
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepo) AttachPayment(_ context.Context, id, gateway, paymentID, checkoutURL string) error {
	return r.modify(id, func(b *models.Booking) {
		b.Gateway = gateway
		b.GatewayPaymentID = paymentID
		b.CheckoutURL = checkoutURL
	})
}

func (r *MemoryBookingRepo) UpdateStatus(_ context.Context, id, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid booking status %q", status)
	}
	return r.modify(id, func(b *models.Booking) { b.Status = status })
}

func (r *MemoryBookingRepo) List(_ context.Context, filter ListFilter) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Service != "" && b.Service != filter.Service {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && int64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryBookingRepo) LogEvent(_ context.Context, entry models.PaymentLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	r.logs = append(r.logs, entry)
	return nil
}

func (r *MemoryBookingRepo) GetLogs(_ context.Context, bookingID string) ([]models.PaymentLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.PaymentLog{}
	for _, l := range r.logs {
		if l.BookingID == bookingID {
			out = append(out, l)
		}
	}
	return out, nil
}

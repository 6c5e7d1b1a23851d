package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"digibook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a booking, assigning an ID and timestamps when missing.
func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.StatusPending
	}

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) findOne(ctx context.Context, filter bson.M) (*models.Booking, error) {
	var booking models.Booking
	err := r.bookings.FindOne(ctx, filter).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

// GetByID returns a booking by its ID.
func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByGatewayPaymentID returns the booking a gateway payment belongs to.
func (r *MongoBookingRepo) GetByGatewayPaymentID(ctx context.Context, paymentID string) (*models.Booking, error) {
	if paymentID == "" {
		return nil, ErrBookingNotFound
	}
	return r.findOne(ctx, bson.M{"gateway_payment_id": paymentID})
}

func (r *MongoBookingRepo) update(ctx context.Context, id string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	res, err := r.bookings.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// AttachPayment records the gateway checkout created for a booking.
func (r *MongoBookingRepo) AttachPayment(ctx context.Context, id, gateway, paymentID, checkoutURL string) error {
	return r.update(ctx, id, bson.M{
		"gateway":            gateway,
		"gateway_payment_id": paymentID,
		"checkout_url":       checkoutURL,
	})
}

// UpdateStatus sets the booking status.
func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.IsValidStatus(status) {
		return fmt.Errorf("invalid booking status %q", status)
	}
	return r.update(ctx, id, bson.M{"status": status})
}

// List returns bookings newest first.
func (r *MongoBookingRepo) List(ctx context.Context, filter ListFilter) ([]models.Booking, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Service != "" {
		query["service"] = filter.Service
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cursor, err := r.bookings.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// LogEvent appends a payment log row.
func (r *MongoBookingRepo) LogEvent(ctx context.Context, entry models.PaymentLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.logs.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("insert payment log: %w", err)
	}
	return nil
}

// GetLogs returns a booking's payment log in insertion order.
func (r *MongoBookingRepo) GetLogs(ctx context.Context, bookingID string) ([]models.PaymentLog, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.logs.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list payment logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []models.PaymentLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode payment logs: %w", err)
	}
	return logs, nil
}

package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"digibook/config"
	"digibook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	bookingsCollection = "bookings"
	logsCollection     = "payment_logs"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookings *mongo.Collection
	logs     *mongo.Collection
}

// NewMongoBookingRepo uses the global client and the configured database.
func NewMongoBookingRepo() BookingRepository {
	repo := NewBookingRepoWithDB(database.MongoClient.Database(config.AppConfig.DatabaseName))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// NewBookingRepoWithDB builds the repository over an explicit database handle.
func NewBookingRepoWithDB(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookings: db.Collection(bookingsCollection),
		logs:     db.Collection(logsCollection),
	}
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (r *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	bookingIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "gateway_payment_id", Value: 1}}, Options: options.Index().SetSparse(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	logIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	if _, err := r.logs.Indexes().CreateMany(ctx, logIndexes); err != nil {
		return fmt.Errorf("failed to create payment log indexes: %w", err)
	}
	return nil
}

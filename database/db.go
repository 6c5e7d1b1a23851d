package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"digibook/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// MongoClient backs the booking repository and the health monitor.
var MongoClient *mongo.Client

// Connect dials uri and pings the primary before handing the client back.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetAppName("digibook").
		SetServerSelectionTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// InitDB sets MongoClient from DATABASE_URL and exits the process when the database is unreachable.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := Connect(ctx, config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	MongoClient = client
	log.Printf("Connected to MongoDB database %q", config.AppConfig.DatabaseName)
}

// Disconnect closes MongoClient if it was opened.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	err := MongoClient.Disconnect(ctx)
	MongoClient = nil
	return err
}

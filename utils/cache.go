// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"digibook/config"

	"github.com/go-redis/redis/v8"
)

var (
	// DraftClient stores wizard session drafts.
	DraftClient *redis.Client
	// QueueClient points at the asynq database and is only used for health checks.
	QueueClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitDraftCache initializes the Redis client for wizard drafts.
func InitDraftCache() {
	DraftClient = newRedisClient(config.AppConfig.RedisDraftDB, "Drafts")
}

// GetDraftClient returns the drafts client.
func GetDraftClient() *redis.Client {
	if DraftClient == nil {
		InitDraftCache()
	}
	return DraftClient
}

// InitQueueCache initializes the Redis client for the task queue database.
func InitQueueCache() {
	QueueClient = newRedisClient(config.AppConfig.RedisQueueDB, "Queue")
}

// GetQueueClient returns the queue database client.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		InitQueueCache()
	}
	return QueueClient
}

package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"digibook/config"
	"digibook/models"
	"digibook/services/notification"
	"digibook/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// QueueRedisOpt is the asynq connection shared by the worker and the enqueuing client.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// InitHandoffWorker runs the async worker in background and returns the server so main can shut it down.
func InitHandoffWorker(notifSvc notification.NotificationService) *asynq.Server {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingHandoff, handleHandoffTask(notifSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[HandoffWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[HandoffWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[HandoffWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	return srv
}

func handleHandoffTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.HandoffPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[HandoffHandler] 🔴 Invalid payload: %v", err)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.BookingID == "" {
			log.Printf("[HandoffHandler] ⚠️ Payload without booking id, dropping")
			return nil
		}

		log.Printf("[HandoffHandler] 📨 Notifying studio about booking %s (%s via %s)", p.BookingID, p.Service, p.Channel)

		if err := notifSvc.NotifyHandoff(ctx, p); err != nil {
			log.Printf("[HandoffHandler] ❌ Failed to notify studio: %v", err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[HandoffWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}

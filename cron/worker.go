package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"doit/config"
	"doit/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitSupportWorker runs the async worker in background. It drains the
// support-alert queue: every entry is a captured payment that has no
// booking record yet, which operations must reconcile by hand.
func InitSupportWorker(logger *zap.Logger) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSupportAlert, handleSupportAlert(logger))

	// Start async worker with retry logic
	go func() {
		log.Println("[SupportWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SupportWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SupportWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSupportAlert(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SupportAlertPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("support alert has invalid payload", zap.Error(err))
			return err
		}

		// The durable log line is the alert channel; ops tooling tails it.
		logger.Error("PAYMENT CAPTURED WITHOUT BOOKING - manual reconciliation required",
			zap.String("alertId", p.AlertID),
			zap.String("scope", p.Scope),
			zap.String("userId", p.Booking.UserID),
			zap.String("service", p.Booking.ServiceType),
			zap.String("date", p.Booking.Date),
			zap.String("cause", p.Cause),
			zap.Time("occurredAt", p.OccurredAt))
		return nil
	}
}

package tasks

import (
	"context"
	"encoding/json"
	"time"

	"doit/config"
	"doit/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeSupportAlert = "support:alert"

// SupportAlertPayload describes a captured payment with no booking record.
// A human has to reconcile these; the queue guarantees none get dropped.
type SupportAlertPayload struct {
	AlertID    string                `json:"alertId"`
	Scope      string                `json:"scope"`
	Booking    models.BookingPayload `json:"booking"`
	Cause      string                `json:"cause"`
	OccurredAt time.Time             `json:"occurredAt"`
}

// NewSupportAlertTask builds the queue task for a payment/booking mismatch.
func NewSupportAlertTask(payload SupportAlertPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSupportAlert, b)
	opts := []asynq.Option{asynq.MaxRetry(10), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// Client enqueues support alerts. It satisfies booking.SupportAlerter.
type Client struct {
	queue *asynq.Client
}

// NewClient connects the task queue to the shared redis instance.
func NewClient() *Client {
	return &Client{
		queue: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisTaskDB,
		}),
	}
}

// PaymentWithoutBooking enqueues the reconciliation alert.
func (c *Client) PaymentWithoutBooking(ctx context.Context, scope string, payload models.BookingPayload, cause error) error {
	task, opts, err := NewSupportAlertTask(SupportAlertPayload{
		AlertID:    uuid.New().String(),
		Scope:      scope,
		Booking:    payload,
		Cause:      cause.Error(),
		OccurredAt: time.Now(),
	})
	if err != nil {
		return err
	}
	_, err = c.queue.EnqueueContext(ctx, task, opts...)
	return err
}

// Close releases the queue connection.
func (c *Client) Close() error {
	return c.queue.Close()
}

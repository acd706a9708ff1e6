// Package worker implements background task handlers for the daily rate pre-warm.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"jewelstore/internal/service"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RateRefresher is the service operation a refresh task runs.
type RateRefresher interface {
	ProcessRefresh(ctx context.Context, date string) (service.RateLookup, error)
}

// NewRateRefreshHandler returns a function to handle rate refresh tasks.
// Malformed payloads and dates are logged and dropped instead of retried.
func NewRateRefreshHandler(svc RateRefresher, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload service.RefreshRatesPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logger.Errorw("Invalid task payload", "type", t.Type(), "error", err)
			return nil
		}

		lookup, err := svc.ProcessRefresh(ctx, payload.Date)
		if err != nil {
			if errors.Is(err, service.ErrInvalidInput) {
				logger.Errorw("Invalid refresh date", "date", payload.Date, "error", err)
				return nil
			}
			logger.Errorw("Task processing failed", "date", payload.Date, "error", err)
			return err
		}

		logger.Infow("Task completed", "date", payload.Date, "origin", lookup.Origin,
			"gold", lookup.Rate.GoldRate, "silver", lookup.Rate.SilverRate)
		return nil
	}
}

// AsynqEnqueuer is responsible for enqueuing tasks to an Asynq queue with specific configurations for retries and timeouts.
type AsynqEnqueuer struct {
	client   *asynq.Client
	maxRetry int
	timeout  time.Duration
}

var _ service.TaskEnqueuer = (*AsynqEnqueuer)(nil)

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client, retry limit, and task timeout duration.
func NewAsynqEnqueuer(client *asynq.Client, maxRetry int, timeout time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:   client,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

// EnqueueRefreshTask enqueues a rate refresh task. One task per date is kept
// in the queue at a time; a second request for a date already queued is a no-op.
func (e *AsynqEnqueuer) EnqueueRefreshTask(ctx context.Context, payload service.RefreshRatesPayload) error {
	task, err := NewRefreshTask(payload, e.maxRetry, e.timeout)
	if err != nil {
		return err
	}

	_, err = e.client.EnqueueContext(ctx, task, asynq.TaskID(service.TaskTypeRefreshRates+":"+payload.Date))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// NewRefreshTask builds the Asynq task for a refresh payload.
func NewRefreshTask(payload service.RefreshRatesPayload, maxRetry int, timeout time.Duration) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(service.TaskTypeRefreshRates, data,
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(timeout),
	), nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"jewelstore/internal/repository"
)

// TaskTypeRefreshRates is the Asynq task type for the daily rate pre-warm.
const TaskTypeRefreshRates = "rates:refresh"

// RefreshRatesPayload is the payload structure for rate refresh Asynq tasks.
type RefreshRatesPayload struct {
	Date string `json:"date"`
}

// TaskEnqueuer puts background tasks on the queue.
type TaskEnqueuer interface {
	EnqueueRefreshTask(ctx context.Context, payload RefreshRatesPayload) error
}

// RequestRefresh enqueues a background lookup of the rates for date.
func (s *RateService) RequestRefresh(ctx context.Context, date time.Time) error {
	if s.enqueuer == nil {
		return ErrInternalQueue
	}

	payload := RefreshRatesPayload{Date: civilDate(date).Format(repository.DateLayout)}
	if err := s.enqueuer.EnqueueRefreshTask(ctx, payload); err != nil {
		s.log.Errorw("Failed to enqueue task", "date", payload.Date, "error", err)
		return ErrInternalQueue
	}

	s.log.Infow("Enqueued rate refresh task", "date", payload.Date)
	return nil
}

// ProcessRefresh resolves the rates for a YYYY-MM-DD date (called by background worker).
// Running it again for the same date returns the stored row.
func (s *RateService) ProcessRefresh(ctx context.Context, date string) (RateLookup, error) {
	day, err := time.Parse(repository.DateLayout, date)
	if err != nil {
		return RateLookup{}, fmt.Errorf("date %q: %w", date, ErrInvalidInput)
	}

	lookup := s.GetRateFor(ctx, day)
	s.log.Infow("Rate refresh done", "date", date, "origin", lookup.Origin, "outcome", lookup.Outcome)
	return lookup, nil
}

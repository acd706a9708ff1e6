// Package scheduler runs cron-style jobs in the store's timezone.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// JobFunc is a scheduled unit of work.
type JobFunc func(ctx context.Context)

type job struct {
	name string
	spec string
	fn   JobFunc
}

// Scheduler wraps gocron with context-aware jobs.
type Scheduler struct {
	s    *gocron.Scheduler
	log  *zap.SugaredLogger
	jobs []job
}

// New creates a Scheduler evaluating cron specs in loc.
func New(loc *time.Location, logger *zap.SugaredLogger) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	s := gocron.NewScheduler(loc)
	s.SingletonModeAll()
	return &Scheduler{s: s, log: logger}
}

// Add registers a job under a five-field cron spec.
func (sch *Scheduler) Add(name, spec string, fn JobFunc) {
	sch.jobs = append(sch.jobs, job{name: name, spec: spec, fn: fn})
}

// Start schedules every job and blocks until ctx is done.
// It returns an error without starting anything if a spec is invalid.
func (sch *Scheduler) Start(ctx context.Context) error {
	for _, j := range sch.jobs {
		j := j
		_, err := sch.s.Cron(j.spec).Tag(j.name).Do(func() {
			select {
			case <-ctx.Done():
				return
			default:
			}
			started := time.Now()
			j.fn(ctx)
			sch.log.Infow("Scheduled job finished", "job", j.name, "duration", time.Since(started))
		})
		if err != nil {
			sch.s.Clear()
			return fmt.Errorf("schedule %s (%q): %w", j.name, j.spec, err)
		}
		sch.log.Infow("Job scheduled", "job", j.name, "spec", j.spec)
	}
	sch.s.StartAsync()

	<-ctx.Done()
	sch.s.Stop()
	return nil
}

// RateRefresher enqueues a background rate lookup for a date.
type RateRefresher interface {
	Today() time.Time
	RequestRefresh(ctx context.Context, date time.Time) error
}

// NewRateRefreshJob returns a job that enqueues the pre-warm of today's rates.
func NewRateRefreshJob(rates RateRefresher, logger *zap.SugaredLogger) JobFunc {
	return func(ctx context.Context) {
		today := rates.Today()
		if err := rates.RequestRefresh(ctx, today); err != nil {
			logger.Errorw("Failed to request rate refresh", "date", today.Format("2006-01-02"), "error", err)
		}
	}
}

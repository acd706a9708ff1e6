package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"jewelstore/internal/repository"
)

// DefaultHistoryLimit is the number of rows returned by RateHistory when no limit is given.
const DefaultHistoryLimit = 30

const maxHistoryLimit = 366

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers    int
	TotalOrders   int
	TotalProducts int
	Rates         RateLookup
}

// AdminServiceInterface defines the admin reporting operations.
type AdminServiceInterface interface {
	Dashboard(ctx context.Context) (*AdminStats, error)
	RateHistory(ctx context.Context, limit int) ([]repository.DailyRate, error)
	StoredRate(ctx context.Context, date time.Time) (*repository.DailyRate, error)
}

// AdminService builds admin reports.
type AdminService struct {
	users    repository.UserRepository
	orders   repository.OrderRepository
	products repository.ProductRepository
	dailies  repository.DailyRateRepository
	rates    RateProvider
	log      *zap.SugaredLogger
}

// NewAdminService creates a new AdminService.
func NewAdminService(users repository.UserRepository, orders repository.OrderRepository, products repository.ProductRepository, dailies repository.DailyRateRepository, rates RateProvider, logger *zap.SugaredLogger) *AdminService {
	return &AdminService{
		users:    users,
		orders:   orders,
		products: products,
		dailies:  dailies,
		rates:    rates,
		log:      logger,
	}
}

// Dashboard returns the entity counts and today's rates.
func (s *AdminService) Dashboard(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalOrders, err = s.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalProducts, err = s.products.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Errorw("DB error building admin dashboard", "error", err)
		return nil, ErrInternal
	}

	stats.Rates = s.rates.GetRateFor(ctx, s.rates.Today())
	return &stats, nil
}

// RateHistory returns the most recent stored daily rates, newest first.
func (s *AdminService) RateHistory(ctx context.Context, limit int) ([]repository.DailyRate, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	rates, err := s.dailies.ListRecent(ctx, limit)
	if err != nil {
		s.log.Errorw("DB error listing daily rates", "error", err)
		return nil, ErrInternal
	}
	return rates, nil
}

// StoredRate returns the stored row for a date without fetching anything.
func (s *AdminService) StoredRate(ctx context.Context, date time.Time) (*repository.DailyRate, error) {
	dr, err := s.dailies.GetByDate(ctx, civilDate(date))
	if err != nil {
		s.log.Errorw("DB error reading daily rate", "date", date.Format(repository.DateLayout), "error", err)
		return nil, ErrInternal
	}
	if dr == nil {
		return nil, ErrNotFound
	}
	return dr, nil
}

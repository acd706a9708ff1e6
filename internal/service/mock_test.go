package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"jewelstore/internal/provider"
	"jewelstore/internal/repository"
)

// Mock daily rate repository
type mockDailyRateRepo struct {
	getByDateFunc  func(ctx context.Context, date time.Time) (*repository.DailyRate, error)
	insertFunc     func(ctx context.Context, rate *repository.DailyRate) error
	listRecentFunc func(ctx context.Context, limit int) ([]repository.DailyRate, error)
}

func (m *mockDailyRateRepo) GetByDate(ctx context.Context, date time.Time) (*repository.DailyRate, error) {
	return m.getByDateFunc(ctx, date)
}

func (m *mockDailyRateRepo) Insert(ctx context.Context, rate *repository.DailyRate) error {
	return m.insertFunc(ctx, rate)
}

func (m *mockDailyRateRepo) ListRecent(ctx context.Context, limit int) ([]repository.DailyRate, error) {
	return m.listRecentFunc(ctx, limit)
}

// memDailyRateRepo is an in-memory daily rate table with the same uniqueness rule as the real one.
type memDailyRateRepo struct {
	mu        sync.Mutex
	rows      map[string]repository.DailyRate
	getErr    error
	insertErr error
	inserts   atomic.Int64
}

func newMemDailyRateRepo() *memDailyRateRepo {
	return &memDailyRateRepo{rows: make(map[string]repository.DailyRate)}
}

func (m *memDailyRateRepo) GetByDate(_ context.Context, date time.Time) (*repository.DailyRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	dr, ok := m.rows[date.Format(repository.DateLayout)]
	if !ok {
		return nil, nil
	}
	return &dr, nil
}

func (m *memDailyRateRepo) Insert(_ context.Context, rate *repository.DailyRate) error {
	m.inserts.Inc()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	key := rate.Date.Format(repository.DateLayout)
	if _, ok := m.rows[key]; ok {
		return fmt.Errorf("daily rate for %s: %w", key, repository.ErrDuplicate)
	}
	rate.CreatedAt = time.Now().UTC()
	m.rows[key] = *rate
	return nil
}

func (m *memDailyRateRepo) ListRecent(_ context.Context, limit int) ([]repository.DailyRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]repository.DailyRate, 0, len(m.rows))
	for _, dr := range m.rows {
		out = append(out, dr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memDailyRateRepo) row(date string) (repository.DailyRate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dr, ok := m.rows[date]
	return dr, ok
}

// fakeSource returns a fixed quote or error, optionally after a delay, and counts calls.
type fakeSource struct {
	quote provider.MetalQuote
	err   error
	delay time.Duration
	calls atomic.Int64
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) FetchRates(ctx context.Context) (provider.MetalQuote, error) {
	f.calls.Inc()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return provider.MetalQuote{}, ctx.Err()
		}
	}
	return f.quote, f.err
}

// Mock user repository
type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *repository.User) error
	getByEmailFunc func(ctx context.Context, email string) (*repository.User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*repository.User, error)
	countFunc      func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *repository.User) error {
	return m.createFunc(ctx, user)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	return m.countFunc(ctx)
}

// Mock product repository
type mockProductRepo struct {
	createFunc      func(ctx context.Context, p *repository.Product) error
	updateFunc      func(ctx context.Context, p *repository.Product) error
	deleteFunc      func(ctx context.Context, id uuid.UUID) error
	getByIDFunc     func(ctx context.Context, id uuid.UUID) (*repository.Product, error)
	listFunc        func(ctx context.Context) ([]repository.Product, error)
	listInStockFunc func(ctx context.Context) ([]repository.Product, error)
	countFunc       func(ctx context.Context) (int, error)
}

func (m *mockProductRepo) Create(ctx context.Context, p *repository.Product) error {
	return m.createFunc(ctx, p)
}

func (m *mockProductRepo) Update(ctx context.Context, p *repository.Product) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*repository.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductRepo) List(ctx context.Context) ([]repository.Product, error) {
	return m.listFunc(ctx)
}

func (m *mockProductRepo) ListInStock(ctx context.Context) ([]repository.Product, error) {
	return m.listInStockFunc(ctx)
}

func (m *mockProductRepo) Count(ctx context.Context) (int, error) {
	return m.countFunc(ctx)
}

// Mock order repository
type mockOrderRepo struct {
	createFunc       func(ctx context.Context, o *repository.Order) error
	listByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error)
	listAllFunc      func(ctx context.Context) ([]repository.OrderDetails, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status string) error
	countFunc        func(ctx context.Context) (int, error)
}

func (m *mockOrderRepo) Create(ctx context.Context, o *repository.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockOrderRepo) ListAll(ctx context.Context) ([]repository.OrderDetails, error) {
	return m.listAllFunc(ctx)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockOrderRepo) Count(ctx context.Context) (int, error) {
	return m.countFunc(ctx)
}

// stubRates is a RateProvider returning a fixed lookup.
type stubRates struct {
	today  time.Time
	lookup RateLookup
}

func (s *stubRates) GetRateFor(_ context.Context, date time.Time) RateLookup {
	l := s.lookup
	l.Rate.Date = civilDate(date)
	return l
}

func (s *stubRates) Today() time.Time { return s.today }

func (s *stubRates) RequestRefresh(context.Context, time.Time) error { return nil }

func (s *stubRates) ProcessRefresh(context.Context, string) (RateLookup, error) {
	return s.lookup, nil
}

// recordingEnqueuer records enqueued payloads.
type recordingEnqueuer struct {
	mu       sync.Mutex
	payloads []RefreshRatesPayload
	err      error
}

func (r *recordingEnqueuer) EnqueueRefreshTask(_ context.Context, payload RefreshRatesPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.payloads = append(r.payloads, payload)
	return nil
}

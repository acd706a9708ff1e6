package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jewelstore/internal/config"
	"jewelstore/internal/provider"
	"jewelstore/internal/repository"
)

var testRatesCfg = config.RatesConfig{
	FetchTimeoutMs: 200,
	FallbackGold:   6500.00,
	FallbackSilver: 75.00,
	Location:       time.UTC,
}

var testCacheCfg = config.CacheConfig{DailyRateTTLSec: 3600}

var testDay = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestRateService(repo repository.DailyRateRepository, src provider.MetalPriceSource, cache *redis.Client) *RateService {
	return NewRateService(repo, src, cache, nil, zap.NewNop().Sugar(), testRatesCfg, testCacheCfg)
}

func TestGetRateFor_StoredDateSkipsFetch(t *testing.T) {
	repo := newMemDailyRateRepo()
	repo.rows["2024-01-15"] = repository.DailyRate{
		Date: testDay, GoldRate: dec("6123.45"), SilverRate: dec("74.10"), Source: "metalpriceapi",
	}
	src := &fakeSource{err: errors.New("must not be called")}
	svc := newTestRateService(repo, src, nil)

	got := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, OriginCache, got.Origin)
	assert.Empty(t, got.Outcome)
	assert.True(t, got.Rate.GoldRate.Equal(dec("6123.45")))
	assert.True(t, got.Rate.SilverRate.Equal(dec("74.10")))
	assert.Equal(t, int64(0), src.calls.Load())
	assert.Equal(t, int64(0), repo.inserts.Load())
}

func TestGetRateFor_FetchedRatesRoundedAndStored(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{quote: provider.MetalQuote{
		Gold: dec("6123.456"), Silver: dec("74.994"), Source: "metalpriceapi",
	}}
	svc := newTestRateService(repo, src, nil)

	got := svc.GetRateFor(context.Background(), time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC))

	assert.Equal(t, OriginFetched, got.Origin)
	assert.Equal(t, provider.OutcomeSuccess, got.Outcome)
	assert.Equal(t, "6123.46", got.Rate.GoldRate.StringFixed(2))
	assert.Equal(t, "74.99", got.Rate.SilverRate.StringFixed(2))

	stored, ok := repo.row("2024-01-15")
	require.True(t, ok, "row must be created for the date")
	assert.True(t, stored.GoldRate.Equal(dec("6123.46")))
	assert.True(t, stored.SilverRate.Equal(dec("74.99")))
	assert.Equal(t, "metalpriceapi", stored.Source)
	assert.False(t, got.Rate.CreatedAt.IsZero())
}

func TestGetRateFor_FailuresUseFallback(t *testing.T) {
	tests := []struct {
		name    string
		src     *fakeSource
		outcome provider.FetchOutcome
	}{
		{
			name:    "timeout",
			src:     &fakeSource{delay: time.Second},
			outcome: provider.OutcomeTimeout,
		},
		{
			name:    "non-success status",
			src:     &fakeSource{err: fmt.Errorf("status 500: %w", provider.ErrBadStatus)},
			outcome: provider.OutcomeBadStatus,
		},
		{
			name:    "undecodable body",
			src:     &fakeSource{err: fmt.Errorf("decode: %w", provider.ErrParse)},
			outcome: provider.OutcomeParseError,
		},
		{
			name:    "connection refused",
			src:     &fakeSource{err: errors.New("dial tcp: connection refused")},
			outcome: provider.OutcomeUnavailable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemDailyRateRepo()
			cfg := testRatesCfg
			cfg.FetchTimeoutMs = 20
			svc := NewRateService(repo, tc.src, nil, nil, zap.NewNop().Sugar(), cfg, testCacheCfg)

			got := svc.GetRateFor(context.Background(), testDay)

			assert.Equal(t, OriginFallback, got.Origin)
			assert.Equal(t, tc.outcome, got.Outcome)
			assert.Equal(t, "6500.00", got.Rate.GoldRate.StringFixed(2))
			assert.Equal(t, "75.00", got.Rate.SilverRate.StringFixed(2))

			stored, ok := repo.row("2024-01-15")
			require.True(t, ok)
			assert.Equal(t, FallbackSource, stored.Source)
		})
	}
}

func TestGetRateFor_RatesRoundingToZeroUseFallback(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{quote: provider.MetalQuote{
		Gold: dec("0.0000041"), Silver: dec("0.00033"), Source: "metalpriceapi",
	}}
	svc := newTestRateService(repo, src, nil)

	got := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, OriginFallback, got.Origin)
	assert.Equal(t, provider.OutcomeBadPayload, got.Outcome)
	assert.Equal(t, "6500.00", got.Rate.GoldRate.StringFixed(2))
	assert.Equal(t, "75.00", got.Rate.SilverRate.StringFixed(2))

	stored, ok := repo.row("2024-01-15")
	require.True(t, ok)
	assert.Equal(t, FallbackSource, stored.Source)
	assert.True(t, stored.GoldRate.IsPositive())
}

func TestGetRateFor_OuncesPerRupeePayloadIsPricedPerGram(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"base":"INR","rates":{"XAU":0.0000041,"XAG":0.00033}}`))
	}))
	defer srv.Close()

	repo := newMemDailyRateRepo()
	svc := newTestRateService(repo, provider.NewMetalPriceAPISource(srv.URL, "secret", "INR", 2), nil)

	got := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, OriginFetched, got.Origin)
	assert.Equal(t, provider.OutcomeSuccess, got.Outcome)
	assert.Equal(t, "7841.65", got.Rate.GoldRate.StringFixed(2))
	assert.Equal(t, "97.43", got.Rate.SilverRate.StringFixed(2))

	stored, ok := repo.row("2024-01-15")
	require.True(t, ok)
	assert.True(t, stored.GoldRate.Equal(dec("7841.65")))
}

func TestGetRateFor_NoSourceConfigured(t *testing.T) {
	svc := newTestRateService(newMemDailyRateRepo(), nil, nil)

	got := svc.GetRateFor(context.Background(), testDay)
	assert.Equal(t, OriginFallback, got.Origin)
	assert.Equal(t, provider.OutcomeUnavailable, got.Outcome)
}

func TestGetRateFor_SequentialCallsFetchOnce(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{quote: provider.MetalQuote{Gold: dec("6200"), Silver: dec("76.5"), Source: "metalpriceapi"}}
	svc := newTestRateService(repo, src, nil)

	first := svc.GetRateFor(context.Background(), testDay)
	second := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, int64(1), src.calls.Load())
	assert.Equal(t, OriginFetched, first.Origin)
	assert.Equal(t, OriginCache, second.Origin)
	assert.True(t, first.Rate.GoldRate.Equal(second.Rate.GoldRate))
	assert.True(t, first.Rate.SilverRate.Equal(second.Rate.SilverRate))
}

func TestGetRateFor_SequentialFallbackIsStable(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{err: fmt.Errorf("status 503: %w", provider.ErrBadStatus)}
	svc := newTestRateService(repo, src, nil)

	first := svc.GetRateFor(context.Background(), testDay)

	// The source recovers, but the date already has a stored row.
	src.err = nil
	src.quote = provider.MetalQuote{Gold: dec("7000"), Silver: dec("80"), Source: "metalpriceapi"}
	second := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, int64(1), src.calls.Load())
	assert.True(t, first.Rate.GoldRate.Equal(second.Rate.GoldRate))
	assert.Equal(t, "6500.00", second.Rate.GoldRate.StringFixed(2))
}

func TestGetRateFor_ConcurrentLookupsShareOneFetch(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{
		quote: provider.MetalQuote{Gold: dec("6300.10"), Silver: dec("77.20"), Source: "metalpriceapi"},
		delay: 50 * time.Millisecond,
	}
	svc := newTestRateService(repo, src, nil)

	const n = 20
	results := make([]RateLookup, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = svc.GetRateFor(context.Background(), testDay)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int64(1), src.calls.Load())
	assert.Equal(t, int64(1), repo.inserts.Load())
	for _, r := range results {
		assert.Equal(t, "6300.10", r.Rate.GoldRate.StringFixed(2))
		assert.Equal(t, "77.20", r.Rate.SilverRate.StringFixed(2))
	}
}

func TestGetRateFor_ConcurrentInstancesAgreeOnStoredRow(t *testing.T) {
	repo := newMemDailyRateRepo()
	srcA := &fakeSource{
		quote: provider.MetalQuote{Gold: dec("7000"), Silver: dec("80"), Source: "a"},
		delay: 20 * time.Millisecond,
	}
	srcB := &fakeSource{
		quote: provider.MetalQuote{Gold: dec("7100"), Silver: dec("81"), Source: "b"},
		delay: 20 * time.Millisecond,
	}
	// Two services model two processes sharing one table.
	svcA := newTestRateService(repo, srcA, nil)
	svcB := newTestRateService(repo, srcB, nil)

	var a, b RateLookup
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); a = svcA.GetRateFor(context.Background(), testDay) }()
	go func() { defer wg.Done(); b = svcB.GetRateFor(context.Background(), testDay) }()
	wg.Wait()

	stored, ok := repo.row("2024-01-15")
	require.True(t, ok)
	assert.True(t, a.Rate.GoldRate.Equal(stored.GoldRate))
	assert.True(t, b.Rate.GoldRate.Equal(stored.GoldRate))
	assert.True(t, a.Rate.SilverRate.Equal(b.Rate.SilverRate))
}

func TestGetRateFor_DuplicateInsertReturnsStoredRow(t *testing.T) {
	winner := &repository.DailyRate{Date: testDay, GoldRate: dec("6400.00"), SilverRate: dec("70.00"), Source: "goldapi"}
	reads := 0
	repo := &mockDailyRateRepo{
		getByDateFunc: func(ctx context.Context, date time.Time) (*repository.DailyRate, error) {
			reads++
			if reads == 1 {
				return nil, nil
			}
			return winner, nil
		},
		insertFunc: func(ctx context.Context, rate *repository.DailyRate) error {
			return fmt.Errorf("daily rate: %w", repository.ErrDuplicate)
		},
	}
	src := &fakeSource{quote: provider.MetalQuote{Gold: dec("6500.50"), Silver: dec("75.50"), Source: "metalpriceapi"}}
	svc := newTestRateService(repo, src, nil)

	got := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, 2, reads)
	assert.Equal(t, OriginCache, got.Origin)
	assert.Equal(t, provider.OutcomeSuccess, got.Outcome)
	assert.Equal(t, "goldapi", got.Rate.Source)
	assert.True(t, got.Rate.GoldRate.Equal(dec("6400.00")))
}

func TestGetRateFor_StorageFailureStillReturnsRates(t *testing.T) {
	repo := newMemDailyRateRepo()
	repo.getErr = errors.New("connection reset")
	repo.insertErr = errors.New("connection reset")
	src := &fakeSource{quote: provider.MetalQuote{Gold: dec("6111.11"), Silver: dec("71.11"), Source: "metalpriceapi"}}
	svc := newTestRateService(repo, src, nil)

	got := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, OriginFetched, got.Origin)
	assert.Equal(t, "6111.11", got.Rate.GoldRate.StringFixed(2))
	_, stored := repo.row("2024-01-15")
	assert.False(t, stored)
}

func TestGetRateFor_RedisCacheAnswersBeforeDB(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	repo := newMemDailyRateRepo()
	src := &fakeSource{quote: provider.MetalQuote{Gold: dec("6250.75"), Silver: dec("73.25"), Source: "metalpriceapi"}}
	svc := newTestRateService(repo, src, rdb)

	first := svc.GetRateFor(context.Background(), testDay)
	require.Equal(t, OriginFetched, first.Origin)

	key := dailyRateCacheKey("2024-01-15")
	require.True(t, mr.Exists(key))
	assert.Equal(t, "6250.75", mr.HGet(key, "gold"))
	assert.Equal(t, time.Hour, mr.TTL(key))

	// DB errors are invisible while the cache holds the date.
	repo.getErr = errors.New("db down")
	second := svc.GetRateFor(context.Background(), testDay)

	assert.Equal(t, OriginCache, second.Origin)
	assert.True(t, second.Rate.GoldRate.Equal(first.Rate.GoldRate))
	assert.True(t, second.Rate.SilverRate.Equal(first.Rate.SilverRate))
	assert.Equal(t, "metalpriceapi", second.Rate.Source)
	assert.Equal(t, int64(1), src.calls.Load())
}

func TestGetRateFor_CorruptCacheEntryIsIgnored(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	mr.HSet(dailyRateCacheKey("2024-01-15"), "gold", "abc", "silver", "75")

	repo := newMemDailyRateRepo()
	repo.rows["2024-01-15"] = repository.DailyRate{Date: testDay, GoldRate: dec("6000.00"), SilverRate: dec("70.00")}
	svc := newTestRateService(repo, &fakeSource{}, rdb)

	got := svc.GetRateFor(context.Background(), testDay)
	assert.True(t, got.Rate.GoldRate.Equal(dec("6000.00")))
}

func TestToday_UsesConfiguredTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	cfg := testRatesCfg
	cfg.Location = loc
	svc := NewRateService(newMemDailyRateRepo(), nil, nil, nil, zap.NewNop().Sugar(), cfg, testCacheCfg)
	svc.now = func() time.Time { return time.Date(2024, 1, 14, 20, 0, 0, 0, time.UTC) }

	assert.Equal(t, testDay, svc.Today())
}

func TestRateFor(t *testing.T) {
	dr := repository.DailyRate{GoldRate: dec("6500.00"), SilverRate: dec("75.00")}

	gold, err := RateFor(dr, repository.MetalGold)
	require.NoError(t, err)
	assert.True(t, gold.Equal(dec("6500")))

	silver, err := RateFor(dr, repository.MetalSilver)
	require.NoError(t, err)
	assert.True(t, silver.Equal(dec("75")))

	_, err = RateFor(dr, "Platinum")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequestRefresh(t *testing.T) {
	enq := &recordingEnqueuer{}
	svc := NewRateService(newMemDailyRateRepo(), nil, nil, enq, zap.NewNop().Sugar(), testRatesCfg, testCacheCfg)

	require.NoError(t, svc.RequestRefresh(context.Background(), time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)))
	require.Len(t, enq.payloads, 1)
	assert.Equal(t, "2024-01-15", enq.payloads[0].Date)

	enq.err = errors.New("redis down")
	assert.ErrorIs(t, svc.RequestRefresh(context.Background(), testDay), ErrInternalQueue)

	noQueue := newTestRateService(newMemDailyRateRepo(), nil, nil)
	assert.ErrorIs(t, noQueue.RequestRefresh(context.Background(), testDay), ErrInternalQueue)
}

func TestProcessRefresh(t *testing.T) {
	repo := newMemDailyRateRepo()
	src := &fakeSource{quote: provider.MetalQuote{Gold: dec("6400"), Silver: dec("74"), Source: "metalpriceapi"}}
	svc := newTestRateService(repo, src, nil)

	got, err := svc.ProcessRefresh(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, OriginFetched, got.Origin)

	again, err := svc.ProcessRefresh(context.Background(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, OriginCache, again.Origin)
	assert.Equal(t, int64(1), src.calls.Load())

	_, err = svc.ProcessRefresh(context.Background(), "15/01/2024")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// Package service implements the storefront business logic: daily metal rates,
// accounts, catalog, orders and admin reporting.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"jewelstore/internal/config"
	"jewelstore/internal/provider"
	"jewelstore/internal/repository"
)

// FallbackSource is the source recorded for rows built from the fallback pair.
const FallbackSource = "fallback"

// Origin tells where the rates of a RateLookup came from.
type Origin string

const (
	OriginCache    Origin = "cache"
	OriginFetched  Origin = "fetched"
	OriginFallback Origin = "fallback"
)

// RateLookup is the result of GetRateFor. Outcome is empty when no external fetch was attempted.
type RateLookup struct {
	Rate    repository.DailyRate
	Origin  Origin
	Outcome provider.FetchOutcome
}

// RateProvider resolves the gold and silver rates for a calendar date.
type RateProvider interface {
	GetRateFor(ctx context.Context, date time.Time) RateLookup
	Today() time.Time
	RequestRefresh(ctx context.Context, date time.Time) error
	ProcessRefresh(ctx context.Context, date string) (RateLookup, error)
}

// RateService resolves daily rates from the rate table, falling back to an external
// source and finally to fixed rates. It never fails: every lookup yields a rate pair.
type RateService struct {
	repo         repository.DailyRateRepository
	source       provider.MetalPriceSource
	cache        *redis.Client
	enqueuer     TaskEnqueuer
	log          *zap.SugaredLogger
	group        singleflight.Group
	fetchTimeout time.Duration
	cacheTTL     time.Duration
	fallbackGold decimal.Decimal
	fallbackSilv decimal.Decimal
	loc          *time.Location
	now          func() time.Time
}

// NewRateService creates a new RateService. cache and enqueuer may be nil.
func NewRateService(repo repository.DailyRateRepository, source provider.MetalPriceSource, cache *redis.Client, enqueuer TaskEnqueuer, logger *zap.SugaredLogger, ratesCfg config.RatesConfig, cacheCfg config.CacheConfig) *RateService {
	loc := ratesCfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &RateService{
		repo:         repo,
		source:       source,
		cache:        cache,
		enqueuer:     enqueuer,
		log:          logger,
		fetchTimeout: ratesCfg.FetchTimeout(),
		cacheTTL:     time.Duration(cacheCfg.DailyRateTTLSec) * time.Second,
		fallbackGold: decimal.NewFromFloat(ratesCfg.FallbackGold).Round(2),
		fallbackSilv: decimal.NewFromFloat(ratesCfg.FallbackSilver).Round(2),
		loc:          loc,
		now:          time.Now,
	}
}

// Today returns the current calendar date in the configured timezone.
func (s *RateService) Today() time.Time {
	return civilDate(s.now().In(s.loc))
}

// GetRateFor returns the rates for the calendar date of date (its year, month and day;
// the clock and zone are ignored).
//
// A stored row always wins and is returned unchanged. Otherwise the external source is
// asked once under a timeout, with concurrent misses for the same date sharing that
// attempt; any fetch failure substitutes the fallback pair. The obtained pair is stored
// before returning. If another writer stored the date first, its row is returned instead.
// Storage failures are logged and the obtained pair is returned without being stored.
func (s *RateService) GetRateFor(ctx context.Context, date time.Time) RateLookup {
	day := civilDate(date)
	key := day.Format(repository.DateLayout)

	if dr, ok := s.cacheGetRate(ctx, key); ok {
		return RateLookup{Rate: *dr, Origin: OriginCache}
	}

	// The shared attempt must not be cut short by whichever caller started it.
	v, _, _ := s.group.Do(key, func() (any, error) {
		return s.lookupOrFetch(context.WithoutCancel(ctx), day), nil
	})
	return v.(RateLookup)
}

func (s *RateService) lookupOrFetch(ctx context.Context, day time.Time) RateLookup {
	key := day.Format(repository.DateLayout)

	stored, err := s.repo.GetByDate(ctx, day)
	if err != nil {
		s.log.Errorw("DB error reading daily rate", "date", key, "error", err)
	} else if stored != nil {
		s.cacheSetRate(ctx, stored)
		return RateLookup{Rate: *stored, Origin: OriginCache}
	}

	rate, outcome := s.fetch(ctx, day)
	lookup := RateLookup{Rate: rate, Origin: OriginFetched, Outcome: outcome}
	if outcome != provider.OutcomeSuccess {
		lookup.Origin = OriginFallback
	}

	err = s.repo.Insert(ctx, &rate)
	switch {
	case err == nil:
		lookup.Rate = rate
		s.log.Infow("Stored daily rate", "date", key, "gold", rate.GoldRate, "silver", rate.SilverRate, "source", rate.Source)
		s.cacheSetRate(ctx, &rate)
	case errors.Is(err, repository.ErrDuplicate):
		winner, rerr := s.repo.GetByDate(ctx, day)
		if rerr != nil || winner == nil {
			s.log.Warnw("Daily rate already stored but could not be re-read", "date", key, "error", rerr)
			return lookup
		}
		s.cacheSetRate(ctx, winner)
		return RateLookup{Rate: *winner, Origin: OriginCache, Outcome: outcome}
	default:
		s.log.Errorw("DB error storing daily rate", "date", key, "error", err)
	}
	return lookup
}

// fetch asks the external source once. Any failure yields the fallback pair.
func (s *RateService) fetch(ctx context.Context, day time.Time) (repository.DailyRate, provider.FetchOutcome) {
	if s.source == nil {
		return s.fallbackRate(day), provider.OutcomeUnavailable
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	q, err := s.source.FetchRates(fctx)
	outcome := provider.Classify(err)
	if err != nil {
		s.log.Warnw("Metal price fetch failed, using fallback rates",
			"date", day.Format(repository.DateLayout), "outcome", outcome, "error", err)
		return s.fallbackRate(day), outcome
	}

	rate := repository.DailyRate{
		Date:       day,
		GoldRate:   q.Gold.Round(2),
		SilverRate: q.Silver.Round(2),
		Source:     q.Source,
	}
	if !rate.GoldRate.IsPositive() || !rate.SilverRate.IsPositive() {
		s.log.Warnw("Metal price fetch returned unusable rates, using fallback rates",
			"date", day.Format(repository.DateLayout), "gold", q.Gold, "silver", q.Silver)
		return s.fallbackRate(day), provider.OutcomeBadPayload
	}
	return rate, outcome
}

func (s *RateService) fallbackRate(day time.Time) repository.DailyRate {
	return repository.DailyRate{
		Date:       day,
		GoldRate:   s.fallbackGold,
		SilverRate: s.fallbackSilv,
		Source:     FallbackSource,
	}
}

// RateFor returns the per-unit rate for a product metal type.
func RateFor(dr repository.DailyRate, metal string) (decimal.Decimal, error) {
	switch metal {
	case repository.MetalGold:
		return dr.GoldRate, nil
	case repository.MetalSilver:
		return dr.SilverRate, nil
	}
	return decimal.Zero, fmt.Errorf("unknown metal type %q: %w", metal, ErrInvalidInput)
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

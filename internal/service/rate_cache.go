package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"jewelstore/internal/repository"
)

const cacheKeyPrefixDailyRate = "daily_rate:"

func dailyRateCacheKey(date string) string {
	return cacheKeyPrefixDailyRate + "{" + date + "}"
}

func (s *RateService) cacheGetRate(ctx context.Context, date string) (*repository.DailyRate, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := dailyRateCacheKey(date)
	vals, err := s.cache.HMGet(ctx, key, "gold", "silver", "source", "created_at").Result()
	if err != nil || len(vals) != 4 || vals[0] == nil || vals[1] == nil {
		return nil, false
	}

	day, err := time.Parse(repository.DateLayout, date)
	if err != nil {
		return nil, false
	}
	gold, ok := asDecimal(vals[0])
	if !ok {
		return nil, false
	}
	silver, ok := asDecimal(vals[1])
	if !ok {
		return nil, false
	}

	dr := &repository.DailyRate{Date: day, GoldRate: gold, SilverRate: silver}
	dr.Source, _ = asString(vals[2])
	if ts, ok := asString(vals[3]); ok {
		dr.CreatedAt, _ = time.Parse(time.RFC3339, ts)
	}
	return dr, true
}

func (s *RateService) cacheSetRate(ctx context.Context, dr *repository.DailyRate) {
	if s.cache == nil || dr == nil {
		return
	}

	key := dailyRateCacheKey(dr.Date.Format(repository.DateLayout))
	pipe := s.cache.Pipeline()
	pipe.HSet(ctx, key,
		"gold", dr.GoldRate.StringFixed(2),
		"silver", dr.SilverRate.StringFixed(2),
		"source", dr.Source,
		"created_at", dr.CreatedAt.Format(time.RFC3339),
	)
	pipe.Expire(ctx, key, s.cacheTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnw("Failed to update cache", "key", key, "error", err)
	}
}

func asDecimal(v any) (decimal.Decimal, bool) {
	str, ok := asString(v)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	default:
		return "", false
	}
}

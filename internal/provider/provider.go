// Package provider implements external metal price sources for the daily gold and silver rates.
package provider

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Metal symbols as used by the price APIs.
const (
	SymbolGold   = "XAU"
	SymbolSilver = "XAG"
)

// MetalQuote is a gold/silver per-unit price pair as returned by a source.
type MetalQuote struct {
	Gold      decimal.Decimal
	Silver    decimal.Decimal
	Source    string
	FetchedAt time.Time
}

// MetalPriceSource defines an interface for fetching metal prices from external sources.
type MetalPriceSource interface {
	Name() string
	FetchRates(ctx context.Context) (MetalQuote, error)
}

// Errors returned by sources. Wrapped with request details; match with errors.Is.
var (
	ErrBadStatus   = errors.New("unexpected response status")
	ErrParse       = errors.New("undecodable response body")
	ErrBadPayload  = errors.New("unexpected payload shape")
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

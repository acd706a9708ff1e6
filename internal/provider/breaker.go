package provider

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BreakerState is the state of a BreakerSource.
type BreakerState int

// Breaker states.
const (
	StateClosed BreakerState = iota
	StateOpen
	StateHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	}
	return "unknown"
}

var _ MetalPriceSource = (*BreakerSource)(nil)

// BreakerSource wraps a MetalPriceSource with a circuit breaker. After threshold
// consecutive failures it stops calling the source for resetTimeout, then lets a
// single probe through.
type BreakerSource struct {
	source       MetalPriceSource
	log          *zap.SugaredLogger
	threshold    int
	resetTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	state       BreakerState
	failures    int
	lastFailure time.Time
	probing     bool
}

// NewBreakerSource creates a new BreakerSource in the closed state.
func NewBreakerSource(source MetalPriceSource, threshold int, resetTimeout time.Duration, logger *zap.SugaredLogger) *BreakerSource {
	return &BreakerSource{
		source:       source,
		log:          logger,
		threshold:    threshold,
		resetTimeout: resetTimeout,
		now:          time.Now,
		state:        StateClosed,
	}
}

// Name returns the wrapped source's name.
func (b *BreakerSource) Name() string { return b.source.Name() }

// State returns the current breaker state.
func (b *BreakerSource) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// FetchRates calls the wrapped source unless the circuit is open.
func (b *BreakerSource) FetchRates(ctx context.Context) (MetalQuote, error) {
	if !b.allow() {
		return MetalQuote{}, ErrCircuitOpen
	}

	q, err := b.source.FetchRates(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false

	if err != nil {
		b.failures++
		b.lastFailure = b.now()
		if b.state == StateHalfOpen || b.failures >= b.threshold {
			if b.state != StateOpen {
				b.log.Warnw("Price source circuit opened", "source", b.source.Name(), "failures", b.failures, "error", err)
			}
			b.state = StateOpen
		}
		return MetalQuote{}, err
	}

	if b.state == StateHalfOpen {
		b.log.Infow("Price source circuit closed", "source", b.source.Name())
	}
	b.state = StateClosed
	b.failures = 0
	return q, nil
}

func (b *BreakerSource) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Sub(b.lastFailure) < b.resetTimeout {
			return false
		}
		b.state = StateHalfOpen
		b.probing = true
		return true
	case StateHalfOpen:
		// one probe at a time
		if b.probing {
			return false
		}
		b.probing = true
		return true
	}
	return true
}

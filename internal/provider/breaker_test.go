package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBreakerSource_StateTransitions(t *testing.T) {
	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m := new(MockSource)
	b := NewBreakerSource(m, 2, time.Minute, zap.NewNop().Sugar())
	b.now = func() time.Time { return clock }

	m.On("FetchRates", mock.Anything).Return(MetalQuote{}, errors.New("source down")).Twice()

	require.Equal(t, StateClosed, b.State())
	for i := 0; i < 2; i++ {
		_, err := b.FetchRates(context.Background())
		require.Error(t, err)
	}
	assert.Equal(t, StateOpen, b.State())

	// Open: no call reaches the source.
	_, err := b.FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrCircuitOpen)
	m.AssertNumberOfCalls(t, "FetchRates", 2)

	// After the reset timeout a probe goes through and closes the circuit.
	clock = clock.Add(time.Minute + time.Second)
	m.On("FetchRates", mock.Anything).Return(quote("6500", "75", "mock"), nil).Once()

	q, err := b.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mock", q.Source)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerSource_FailedProbeReopens(t *testing.T) {
	clock := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	m := new(MockSource)
	b := NewBreakerSource(m, 1, time.Minute, zap.NewNop().Sugar())
	b.now = func() time.Time { return clock }

	m.On("FetchRates", mock.Anything).Return(MetalQuote{}, errors.New("source down"))

	_, _ = b.FetchRates(context.Background())
	require.Equal(t, StateOpen, b.State())

	clock = clock.Add(2 * time.Minute)
	_, err := b.FetchRates(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, StateOpen, b.State())

	_, err = b.FetchRates(context.Background())
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerSource_SuccessResetsFailures(t *testing.T) {
	m := new(MockSource)
	b := NewBreakerSource(m, 2, time.Minute, zap.NewNop().Sugar())

	m.On("FetchRates", mock.Anything).Return(MetalQuote{}, errors.New("blip")).Once()
	m.On("FetchRates", mock.Anything).Return(quote("6500", "75", "mock"), nil).Once()
	m.On("FetchRates", mock.Anything).Return(MetalQuote{}, errors.New("blip")).Once()

	_, _ = b.FetchRates(context.Background())
	_, _ = b.FetchRates(context.Background())
	_, _ = b.FetchRates(context.Background())

	assert.Equal(t, StateClosed, b.State())
}

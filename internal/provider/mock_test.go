package provider

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Name() string {
	return "mock"
}

func (m *MockSource) FetchRates(ctx context.Context) (MetalQuote, error) {
	args := m.Called(ctx)
	return args.Get(0).(MetalQuote), args.Error(1)
}

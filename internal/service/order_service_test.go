package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jewelstore/internal/repository"
)

func newStubRates() *stubRates {
	return &stubRates{
		today: testDay,
		lookup: RateLookup{
			Rate:   repository.DailyRate{GoldRate: dec("6500.00"), SilverRate: dec("75.00"), Source: FallbackSource},
			Origin: OriginFallback,
		},
	}
}

func TestPlaceOrder_PricesFromTodaysRate(t *testing.T) {
	tests := []struct {
		name   string
		metal  string
		weight decimal.Decimal
		rate   string
		total  string
	}{
		{"gold", repository.MetalGold, dec("2.5"), "6500.00", "16250.00"},
		{"silver", repository.MetalSilver, dec("12.345"), "75.00", "925.88"},
		{"trailing zeros beyond milligrams", repository.MetalSilver, dec("12.34500"), "75.00", "925.88"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product := &repository.Product{ID: uuid.New(), Name: "Item", Type: tc.metal, BaseWeight: dec("1"), Stock: 2}
			products := &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*repository.Product, error) { return product, nil },
			}
			var created *repository.Order
			orders := &mockOrderRepo{
				createFunc: func(ctx context.Context, o *repository.Order) error {
					o.Status = repository.StatusPending
					created = o
					return nil
				},
			}
			svc := NewOrderService(orders, products, newStubRates(), zap.NewNop().Sugar())

			userID := uuid.New()
			order, err := svc.PlaceOrder(context.Background(), userID, product.ID, tc.weight)
			require.NoError(t, err)
			require.Same(t, created, order)

			assert.Equal(t, userID, order.UserID)
			assert.Equal(t, tc.rate, order.Rate.StringFixed(2))
			assert.Equal(t, tc.total, order.TotalAmount.StringFixed(2))
			assert.Equal(t, repository.StatusPending, order.Status)
		})
	}
}

func TestPlaceOrder_Errors(t *testing.T) {
	inStock := &repository.Product{ID: uuid.New(), Type: repository.MetalGold, Stock: 1}
	soldOut := &repository.Product{ID: uuid.New(), Type: repository.MetalGold, Stock: 0}

	tests := []struct {
		name      string
		product   *repository.Product
		getErr    error
		createErr error
		weight    decimal.Decimal
		want      error
	}{
		{"zero weight", inStock, nil, nil, dec("0"), ErrInvalidInput},
		{"negative weight", inStock, nil, nil, dec("-1"), ErrInvalidInput},
		{"weight finer than a milligram", inStock, nil, nil, dec("1.2345"), ErrInvalidInput},
		{"weight rounding to zero grams", inStock, nil, nil, dec("0.0004"), ErrInvalidInput},
		{"unknown product", nil, nil, nil, dec("1"), ErrNotFound},
		{"out of stock", soldOut, nil, nil, dec("1"), ErrOutOfStock},
		{"db failure", nil, errors.New("boom"), nil, dec("1"), ErrInternal},
		{"product deleted meanwhile", inStock, nil, fmt.Errorf("fk: %w", repository.ErrForeignKey), dec("1"), ErrNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			products := &mockProductRepo{
				getByIDFunc: func(ctx context.Context, id uuid.UUID) (*repository.Product, error) { return tc.product, tc.getErr },
			}
			orders := &mockOrderRepo{
				createFunc: func(ctx context.Context, o *repository.Order) error { return tc.createErr },
			}
			svc := NewOrderService(orders, products, newStubRates(), zap.NewNop().Sugar())

			_, err := svc.PlaceOrder(context.Background(), uuid.New(), uuid.New(), tc.weight)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateStatus(t *testing.T) {
	var gotStatus string
	orders := &mockOrderRepo{
		updateStatusFunc: func(ctx context.Context, id uuid.UUID, status string) error {
			gotStatus = status
			return nil
		},
	}
	svc := NewOrderService(orders, &mockProductRepo{}, newStubRates(), zap.NewNop().Sugar())

	require.NoError(t, svc.UpdateStatus(context.Background(), uuid.New(), repository.StatusShipped))
	assert.Equal(t, repository.StatusShipped, gotStatus)

	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), uuid.New(), "Lost"), ErrInvalidInput)

	orders.updateStatusFunc = func(ctx context.Context, id uuid.UUID, status string) error {
		return fmt.Errorf("order: %w", sql.ErrNoRows)
	}
	assert.ErrorIs(t, svc.UpdateStatus(context.Background(), uuid.New(), repository.StatusCancelled), ErrNotFound)
}

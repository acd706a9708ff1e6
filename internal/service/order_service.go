package service

import (
	"context"
	"database/sql"
	"errors"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jewelstore/internal/repository"
)

// OrderServiceInterface defines the order operations.
type OrderServiceInterface interface {
	PlaceOrder(ctx context.Context, userID, productID uuid.UUID, weight decimal.Decimal) (*repository.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error)
	ListAllOrders(ctx context.Context) ([]repository.OrderDetails, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// OrderService places orders priced from today's metal rate.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	rates    RateProvider
	log      *zap.SugaredLogger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, rates RateProvider, logger *zap.SugaredLogger) *OrderService {
	return &OrderService{orders: orders, products: products, rates: rates, log: logger}
}

// WeightPlaces is the scale of order weights in storage.
const WeightPlaces = 3

// PlaceOrder creates a pending order for weight units of an in-stock product.
// The rate is today's rate for the product's metal and the total is weight × rate,
// rounded to two decimals. Weights finer than the stored three decimals are
// rejected so the total always matches the persisted weight. Stock is checked
// but not decremented.
func (s *OrderService) PlaceOrder(ctx context.Context, userID, productID uuid.UUID, weight decimal.Decimal) (*repository.Order, error) {
	if !weight.IsPositive() || !weight.Equal(weight.Round(WeightPlaces)) {
		return nil, ErrInvalidInput
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		s.log.Errorw("DB error fetching product", "product_id", productID, "error", err)
		return nil, ErrInternal
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.Stock <= 0 {
		return nil, ErrOutOfStock
	}

	lookup := s.rates.GetRateFor(ctx, s.rates.Today())
	rate, err := RateFor(lookup.Rate, product.Type)
	if err != nil {
		s.log.Errorw("Product has unknown metal type", "product_id", productID, "type", product.Type)
		return nil, ErrInternal
	}

	order := &repository.Order{
		ID:          uuid.New(),
		UserID:      userID,
		ProductID:   productID,
		Weight:      weight,
		Rate:        rate,
		TotalAmount: weight.Mul(rate).Round(2),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrNotFound
		}
		s.log.Errorw("DB error creating order", "user_id", userID, "error", err)
		return nil, ErrInternal
	}

	s.log.Infow("Order placed", "order_id", order.ID, "user_id", userID, "product_id", productID,
		"rate", rate, "total", order.TotalAmount, "rate_origin", lookup.Origin)
	return order, nil
}

// ListUserOrders returns the user's orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		s.log.Errorw("DB error listing user orders", "user_id", userID, "error", err)
		return nil, ErrInternal
	}
	return orders, nil
}

// ListAllOrders returns every order, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]repository.OrderDetails, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		s.log.Errorw("DB error listing orders", "error", err)
		return nil, ErrInternal
	}
	return orders, nil
}

// UpdateStatus moves an order to one of the allowed statuses.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if !slices.Contains(repository.OrderStatuses, status) {
		return ErrInvalidInput
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		s.log.Errorw("DB error updating order status", "order_id", id, "error", err)
		return ErrInternal
	}

	s.log.Infow("Order status updated", "order_id", id, "status", status)
	return nil
}

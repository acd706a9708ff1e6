package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values, mirroring the order_status enum.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled}

// Order is a placed purchase with the rate and total frozen at order time.
type Order struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Weight      decimal.Decimal
	Rate        decimal.Decimal
	TotalAmount decimal.Decimal
	Status      string
	OrderDate   time.Time
}

// OrderDetails is an order joined with its product and, for admin listings, its user.
type OrderDetails struct {
	Order
	ProductName string
	ProductType string
	UserName    string
	UserEmail   string
}

// OrderRepository defines DB operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetails, error)
	ListAll(ctx context.Context) ([]OrderDetails, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Count(ctx context.Context) (int, error)
}

// PostgresOrderRepository is an implementation of OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db *sql.DB
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository.
func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Create inserts a new order and fills in its status and order date.
func (r *PostgresOrderRepository) Create(ctx context.Context, o *Order) error {
	query := `INSERT INTO orders (id, user_id, product_id, weight, rate, total_amount)
              VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6::numeric)
              RETURNING status, order_date`

	err := r.db.QueryRowContext(ctx, query,
		o.ID, o.UserID, o.ProductID, o.Weight.String(), o.Rate.StringFixed(2), o.TotalAmount.StringFixed(2),
	).Scan(&o.Status, &o.OrderDate)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", mapPgError(err))
	}
	return nil
}

// ListByUser returns the user's orders with product details, newest first.
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]OrderDetails, error) {
	query := `SELECT o.id, o.user_id, o.product_id, o.weight, o.rate, o.total_amount, o.status, o.order_date,
                     p.name, p.type, u.name, u.email
              FROM orders o
              JOIN products p ON p.id = o.product_id
              JOIN users u ON u.id = o.user_id
              WHERE o.user_id = $1
              ORDER BY o.order_date DESC`

	return r.query(ctx, query, userID)
}

// ListAll returns every order with user and product details, newest first.
func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]OrderDetails, error) {
	query := `SELECT o.id, o.user_id, o.product_id, o.weight, o.rate, o.total_amount, o.status, o.order_date,
                     p.name, p.type, u.name, u.email
              FROM orders o
              JOIN products p ON p.id = o.product_id
              JOIN users u ON u.id = o.user_id
              ORDER BY o.order_date DESC`

	return r.query(ctx, query)
}

// UpdateStatus sets the order status. It wraps sql.ErrNoRows when the order does not exist.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2::order_status WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", mapPgError(err))
	}
	return checkRowsAffected(result, "order", id.String())
}

// Count returns the number of orders.
func (r *PostgresOrderRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

func (r *PostgresOrderRepository) query(ctx context.Context, query string, args ...any) ([]OrderDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var orders []OrderDetails
	for rows.Next() {
		var d OrderDetails
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.ProductID, &d.Weight, &d.Rate, &d.TotalAmount, &d.Status, &d.OrderDate,
			&d.ProductName, &d.ProductType, &d.UserName, &d.UserEmail,
		); err != nil {
			return nil, err
		}
		orders = append(orders, d)
	}
	return orders, rows.Err()
}

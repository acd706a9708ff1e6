package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Metal type values stored in products.type.
const (
	MetalGold   = "Gold"
	MetalSilver = "Silver"
)

// Product is a catalog item priced by weight of a single metal.
type Product struct {
	ID         uuid.UUID
	Name       string
	Type       string
	BaseWeight decimal.Decimal
	Stock      int
	CreatedAt  time.Time
}

// ProductRepository defines DB operations for the product catalog.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	ListInStock(ctx context.Context) ([]Product, error)
	Count(ctx context.Context) (int, error)
}

// PostgresProductRepository is an implementation of ProductRepository using PostgreSQL.
type PostgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a new PostgresProductRepository.
func NewPostgresProductRepository(db *sql.DB) ProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, type, base_weight, stock, created_at`

// Create inserts a new product and fills in its creation time.
func (r *PostgresProductRepository) Create(ctx context.Context, p *Product) error {
	query := `INSERT INTO products (id, name, type, base_weight, stock)
              VALUES ($1, $2, $3, $4::numeric, $5)
              RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		p.ID, p.Name, p.Type, p.BaseWeight.String(), p.Stock,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", mapPgError(err))
	}
	return nil
}

// Update overwrites the mutable fields of an existing product.
// It wraps sql.ErrNoRows when the product does not exist.
func (r *PostgresProductRepository) Update(ctx context.Context, p *Product) error {
	query := `UPDATE products
              SET name = $2, type = $3, base_weight = $4::numeric, stock = $5
              WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Type, p.BaseWeight.String(), p.Stock)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapPgError(err))
	}
	return checkRowsAffected(result, "product", p.ID.String())
}

// Delete removes a product. A product referenced by orders cannot be deleted (ErrForeignKey).
func (r *PostgresProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapPgError(err))
	}
	return checkRowsAffected(result, "product", id.String())
}

// GetByID returns the product, or (nil, nil) if it does not exist.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p Product
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.BaseWeight, &p.Stock, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// List returns every product, newest first.
func (r *PostgresProductRepository) List(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at DESC`)
}

// ListInStock returns products with stock above zero, ordered by name.
func (r *PostgresProductRepository) ListInStock(ctx context.Context) ([]Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products WHERE stock > 0 ORDER BY name`)
}

// Count returns the number of catalog products.
func (r *PostgresProductRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (r *PostgresProductRepository) query(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // best-effort close

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.BaseWeight, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

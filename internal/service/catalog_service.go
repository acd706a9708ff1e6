package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"jewelstore/internal/repository"
)

// ProductInput holds the editable fields of a product.
type ProductInput struct {
	Name       string
	Type       string
	BaseWeight decimal.Decimal
	Stock      int
}

// CatalogServiceInterface defines the product catalog operations.
type CatalogServiceInterface interface {
	CreateProduct(ctx context.Context, in ProductInput) (*repository.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*repository.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProduct(ctx context.Context, id uuid.UUID) (*repository.Product, error)
	ListProducts(ctx context.Context) ([]repository.Product, error)
	ListInStock(ctx context.Context) ([]repository.Product, error)
}

// CatalogService manages the product catalog.
type CatalogService struct {
	products repository.ProductRepository
	log      *zap.SugaredLogger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repository.ProductRepository, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{products: products, log: logger}
}

// CreateProduct validates and stores a new product.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*repository.Product, error) {
	in, err := normalizeProduct(in)
	if err != nil {
		return nil, err
	}

	p := &repository.Product{
		ID:         uuid.New(),
		Name:       in.Name,
		Type:       in.Type,
		BaseWeight: in.BaseWeight,
		Stock:      in.Stock,
	}
	if err := s.products.Create(ctx, p); err != nil {
		s.log.Errorw("DB error creating product", "error", err)
		return nil, ErrInternal
	}

	s.log.Infow("Product created", "product_id", p.ID, "type", p.Type)
	return p, nil
}

// UpdateProduct replaces the editable fields of an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*repository.Product, error) {
	in, err := normalizeProduct(in)
	if err != nil {
		return nil, err
	}

	p := &repository.Product{
		ID:         id,
		Name:       in.Name,
		Type:       in.Type,
		BaseWeight: in.BaseWeight,
		Stock:      in.Stock,
	}
	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.log.Errorw("DB error updating product", "product_id", id, "error", err)
		return nil, ErrInternal
	}

	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product that no order references.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.products.Delete(ctx, id)
	switch {
	case err == nil:
		s.log.Infow("Product deleted", "product_id", id)
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return ErrInUse
	}
	s.log.Errorw("DB error deleting product", "product_id", id, "error", err)
	return ErrInternal
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*repository.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		s.log.Errorw("DB error fetching product", "product_id", id, "error", err)
		return nil, ErrInternal
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// ListProducts returns the whole catalog.
func (s *CatalogService) ListProducts(ctx context.Context) ([]repository.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		s.log.Errorw("DB error listing products", "error", err)
		return nil, ErrInternal
	}
	return products, nil
}

// ListInStock returns the products shoppers can order.
func (s *CatalogService) ListInStock(ctx context.Context) ([]repository.Product, error) {
	products, err := s.products.ListInStock(ctx)
	if err != nil {
		s.log.Errorw("DB error listing in-stock products", "error", err)
		return nil, ErrInternal
	}
	return products, nil
}

// normalizeProduct trims the name and canonicalizes the metal type ("gold" -> "Gold").
func normalizeProduct(in ProductInput) (ProductInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case strings.EqualFold(in.Type, repository.MetalGold):
		in.Type = repository.MetalGold
	case strings.EqualFold(in.Type, repository.MetalSilver):
		in.Type = repository.MetalSilver
	default:
		return in, ErrInvalidInput
	}
	if in.Name == "" || !in.BaseWeight.IsPositive() || in.Stock < 0 {
		return in, ErrInvalidInput
	}
	return in, nil
}

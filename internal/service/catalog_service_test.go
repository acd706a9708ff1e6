package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jewelstore/internal/repository"
)

func TestNormalizeProduct(t *testing.T) {
	tests := []struct {
		name    string
		in      ProductInput
		want    string
		wantErr bool
	}{
		{"gold", ProductInput{Name: "Ring", Type: "gold", BaseWeight: dec("5.5"), Stock: 3}, repository.MetalGold, false},
		{"silver", ProductInput{Name: "Anklet", Type: "SILVER", BaseWeight: dec("20"), Stock: 0}, repository.MetalSilver, false},
		{"platinum", ProductInput{Name: "Band", Type: "Platinum", BaseWeight: dec("5"), Stock: 1}, "", true},
		{"zero weight", ProductInput{Name: "Ring", Type: "Gold", BaseWeight: dec("0"), Stock: 1}, "", true},
		{"negative stock", ProductInput{Name: "Ring", Type: "Gold", BaseWeight: dec("1"), Stock: -1}, "", true},
		{"blank name", ProductInput{Name: "  ", Type: "Gold", BaseWeight: dec("1"), Stock: 1}, "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeProduct(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Type)
		})
	}
}

func TestCreateProduct(t *testing.T) {
	var created *repository.Product
	repo := &mockProductRepo{
		createFunc: func(ctx context.Context, p *repository.Product) error {
			created = p
			return nil
		},
	}
	svc := NewCatalogService(repo, zap.NewNop().Sugar())

	p, err := svc.CreateProduct(context.Background(), ProductInput{Name: "Chain", Type: "gold", BaseWeight: dec("10.250"), Stock: 4})
	require.NoError(t, err)
	assert.Same(t, created, p)
	assert.Equal(t, repository.MetalGold, p.Type)
	assert.NotEqual(t, uuid.Nil, p.ID)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := &mockProductRepo{
		updateFunc: func(ctx context.Context, p *repository.Product) error {
			return fmt.Errorf("product %s not found: %w", p.ID, sql.ErrNoRows)
		},
	}
	svc := NewCatalogService(repo, zap.NewNop().Sugar())

	_, err := svc.UpdateProduct(context.Background(), uuid.New(), ProductInput{Name: "Chain", Type: "Gold", BaseWeight: dec("1"), Stock: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deleted", nil, nil},
		{"missing", fmt.Errorf("product: %w", sql.ErrNoRows), ErrNotFound},
		{"referenced by orders", fmt.Errorf("orders_product_id_fkey: %w", repository.ErrForeignKey), ErrInUse},
		{"db failure", errors.New("boom"), ErrInternal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockProductRepo{
				deleteFunc: func(ctx context.Context, id uuid.UUID) error { return tc.err },
			}
			svc := NewCatalogService(repo, zap.NewNop().Sugar())

			err := svc.DeleteProduct(context.Background(), uuid.New())
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := &mockProductRepo{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*repository.Product, error) { return nil, nil },
	}
	svc := NewCatalogService(repo, zap.NewNop().Sugar())

	_, err := svc.GetProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

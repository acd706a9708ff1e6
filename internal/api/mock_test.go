package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jewelstore/internal/auth"
	"jewelstore/internal/repository"
	"jewelstore/internal/service"
)

// mockAuthService implements service.AuthServiceInterface for testing.
type mockAuthService struct {
	registerFunc     func(ctx context.Context, in service.RegisterInput) (*repository.User, error)
	loginFunc        func(ctx context.Context, email, password string) (*service.Session, error)
	adminLoginFunc   func(ctx context.Context, email, password string) (*service.Session, error)
	logoutFunc       func(ctx context.Context, p auth.Principal) error
	authenticateFunc func(ctx context.Context, token string) (auth.Principal, error)
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*repository.User, error) {
	return m.registerFunc(ctx, in)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.Session, error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) AdminLogin(ctx context.Context, email, password string) (*service.Session, error) {
	return m.adminLoginFunc(ctx, email, password)
}

func (m *mockAuthService) Logout(ctx context.Context, p auth.Principal) error {
	return m.logoutFunc(ctx, p)
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	return m.authenticateFunc(ctx, token)
}

// mockCatalogService implements service.CatalogServiceInterface for testing.
type mockCatalogService struct {
	createFunc      func(ctx context.Context, in service.ProductInput) (*repository.Product, error)
	updateFunc      func(ctx context.Context, id uuid.UUID, in service.ProductInput) (*repository.Product, error)
	deleteFunc      func(ctx context.Context, id uuid.UUID) error
	getFunc         func(ctx context.Context, id uuid.UUID) (*repository.Product, error)
	listFunc        func(ctx context.Context) ([]repository.Product, error)
	listInStockFunc func(ctx context.Context) ([]repository.Product, error)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, in service.ProductInput) (*repository.Product, error) {
	return m.createFunc(ctx, in)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, in service.ProductInput) (*repository.Product, error) {
	return m.updateFunc(ctx, id, in)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*repository.Product, error) {
	return m.getFunc(ctx, id)
}

func (m *mockCatalogService) ListProducts(ctx context.Context) ([]repository.Product, error) {
	return m.listFunc(ctx)
}

func (m *mockCatalogService) ListInStock(ctx context.Context) ([]repository.Product, error) {
	return m.listInStockFunc(ctx)
}

// mockOrderService implements service.OrderServiceInterface for testing.
type mockOrderService struct {
	placeFunc        func(ctx context.Context, userID, productID uuid.UUID, weight decimal.Decimal) (*repository.Order, error)
	listUserFunc     func(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error)
	listAllFunc      func(ctx context.Context) ([]repository.OrderDetails, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status string) error
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, userID, productID uuid.UUID, weight decimal.Decimal) (*repository.Order, error) {
	return m.placeFunc(ctx, userID, productID, weight)
}

func (m *mockOrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]repository.OrderDetails, error) {
	return m.listUserFunc(ctx, userID)
}

func (m *mockOrderService) ListAllOrders(ctx context.Context) ([]repository.OrderDetails, error) {
	return m.listAllFunc(ctx)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return m.updateStatusFunc(ctx, id, status)
}

// mockAdminService implements service.AdminServiceInterface for testing.
type mockAdminService struct {
	dashboardFunc  func(ctx context.Context) (*service.AdminStats, error)
	historyFunc    func(ctx context.Context, limit int) ([]repository.DailyRate, error)
	storedRateFunc func(ctx context.Context, date time.Time) (*repository.DailyRate, error)
}

func (m *mockAdminService) Dashboard(ctx context.Context) (*service.AdminStats, error) {
	return m.dashboardFunc(ctx)
}

func (m *mockAdminService) RateHistory(ctx context.Context, limit int) ([]repository.DailyRate, error) {
	return m.historyFunc(ctx, limit)
}

func (m *mockAdminService) StoredRate(ctx context.Context, date time.Time) (*repository.DailyRate, error) {
	return m.storedRateFunc(ctx, date)
}

// mockRates implements service.RateProvider for testing.
type mockRates struct {
	today       time.Time
	lookup      service.RateLookup
	refreshErr  error
	refreshedOn time.Time
}

func (m *mockRates) GetRateFor(_ context.Context, _ time.Time) service.RateLookup {
	return m.lookup
}

func (m *mockRates) Today() time.Time {
	return m.today
}

func (m *mockRates) RequestRefresh(_ context.Context, date time.Time) error {
	m.refreshedOn = date
	return m.refreshErr
}

func (m *mockRates) ProcessRefresh(_ context.Context, _ string) (service.RateLookup, error) {
	return m.lookup, nil // Not used in handler tests
}

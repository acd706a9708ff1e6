//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jewelstore/internal/repository"
	"jewelstore/internal/testkit"
)

// resetTestData empties every table and flushes the current Redis database.
func resetTestData(t *testing.T) {
	t.Helper()
	testkit.Global().Reset(t, "orders", "products", "users", "daily_rates")
}

// testContext returns a context with a 30-second deadline tied to the test's cleanup.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// insertUser stores a user with the given email and returns it.
func insertUser(t *testing.T, email string) *repository.User {
	t.Helper()
	u := &repository.User{ID: uuid.New(), Name: "Test User", Mobile: "9000000000", Email: email, PasswordHash: "x"}
	if err := repository.NewPostgresUserRepository(testkit.Global().DB()).Create(testContext(t), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// insertProduct stores a product of the given metal and stock and returns it.
func insertProduct(t *testing.T, name, metal string, stock int) *repository.Product {
	t.Helper()
	p := &repository.Product{ID: uuid.New(), Name: name, Type: metal, BaseWeight: dec("5.000"), Stock: stock}
	if err := repository.NewPostgresProductRepository(testkit.Global().DB()).Create(testContext(t), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

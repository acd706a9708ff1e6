package auth

import (
	"context"
	"time"
)

// Role distinguishes shoppers from the administrator.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// AdminID is the principal id carried by admin tokens.
const AdminID = "admin"

// Principal is the authenticated caller of a request.
type Principal struct {
	ID        string
	Role      Role
	Name      string
	TokenID   string
	ExpiresAt time.Time
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by the auth middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

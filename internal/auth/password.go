// Package auth provides password hashing, access tokens and the request-scoped principal.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt with the given cost.
// A cost outside bcrypt's range falls back to bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CredentialVerifier checks a plaintext password against a stored hash.
// User accounts and the configured admin account share one implementation.
type CredentialVerifier interface {
	Verify(password, hash string) bool
}

// BcryptVerifier verifies bcrypt hashes.
type BcryptVerifier struct{}

// Verify reports whether password matches hash.
func (BcryptVerifier) Verify(password, hash string) bool {
	return CheckPasswordHash(password, hash)
}

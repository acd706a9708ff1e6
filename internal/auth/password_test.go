package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestHashPassword_InvalidCostUsesDefault(t *testing.T) {
	hash, err := HashPassword("pw", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("admin-pass", bcrypt.MinCost)
	require.NoError(t, err)

	var v CredentialVerifier = BcryptVerifier{}
	assert.True(t, v.Verify("admin-pass", hash))
	assert.False(t, v.Verify("admin-pass", "not-a-hash"))
	assert.False(t, v.Verify("", hash))
}

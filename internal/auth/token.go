package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for tokens that fail signature, issuer, expiry or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the JWT claims of an access token.
type Claims struct {
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a token for the given subject and returns it with the matching principal.
func (m *TokenManager) Issue(id, name string, role Role) (string, Principal, error) {
	now := m.now()
	p := Principal{
		ID:        id,
		Role:      role,
		Name:      name,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(m.ttl).Truncate(time.Second),
	}
	claims := Claims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        p.TokenID,
			Issuer:    m.issuer,
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(p.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", Principal{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, p, nil
}

// Parse validates a token and returns its principal.
func (m *TokenManager) Parse(tokenString string) (Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return Principal{}, ErrInvalidToken
	}
	if claims.Role != RoleUser && claims.Role != RoleAdmin {
		return Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	return Principal{
		ID:        claims.Subject,
		Role:      claims.Role,
		Name:      claims.Name,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

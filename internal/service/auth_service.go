package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jewelstore/internal/auth"
	"jewelstore/internal/config"
	"jewelstore/internal/repository"
)

const cacheKeyPrefixRevoked = "revoked_token:"

// RegisterInput holds the fields of a new user account.
type RegisterInput struct {
	Name     string
	Mobile   string
	Email    string
	Password string
}

// Session is an issued access token and the principal it represents.
type Session struct {
	Token     string
	Principal auth.Principal
}

// AuthServiceInterface defines the account and token operations.
type AuthServiceInterface interface {
	Register(ctx context.Context, in RegisterInput) (*repository.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	AdminLogin(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, p auth.Principal) error
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// AuthService registers users and issues, checks and revokes access tokens.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	verifier   auth.CredentialVerifier
	denylist   *redis.Client
	admin      config.AdminConfig
	bcryptCost int
	log        *zap.SugaredLogger
	now        func() time.Time
}

// NewAuthService creates a new AuthService. denylist may be nil, which disables logout revocation.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, verifier auth.CredentialVerifier, denylist *redis.Client, logger *zap.SugaredLogger, authCfg config.AuthConfig, adminCfg config.AdminConfig) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     tokens,
		verifier:   verifier,
		denylist:   denylist,
		admin:      adminCfg,
		bcryptCost: authCfg.BcryptCost,
		log:        logger,
		now:        time.Now,
	}
}

// Register creates a user account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*repository.User, error) {
	email := strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" {
		return nil, ErrInvalidInput
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		s.log.Errorw("Password hashing failed", "error", err)
		return nil, ErrInternal
	}

	user := &repository.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(in.Name),
		Mobile:       strings.TrimSpace(in.Mobile),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		s.log.Errorw("DB error creating user", "error", err)
		return nil, ErrInternal
	}

	s.log.Infow("User registered", "user_id", user.ID)
	return user, nil
}

// Login verifies user credentials and issues a user token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		s.log.Errorw("DB error fetching user by email", "error", err)
		return nil, ErrInternal
	}
	if user == nil || !s.verifier.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user.ID.String(), user.Name, auth.RoleUser)
}

// AdminLogin verifies the configured admin credentials and issues an admin token.
func (s *AuthService) AdminLogin(_ context.Context, email, password string) (*Session, error) {
	if s.admin.Email == "" || s.admin.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !strings.EqualFold(strings.TrimSpace(email), s.admin.Email) || !s.verifier.Verify(password, s.admin.PasswordHash) {
		s.log.Warnw("Rejected admin login", "email", email)
		return nil, ErrInvalidCredentials
	}

	return s.issue(auth.AdminID, "Administrator", auth.RoleAdmin)
}

// Logout revokes the principal's token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, p auth.Principal) error {
	if s.denylist == nil {
		return nil
	}

	ttl := p.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Set(ctx, cacheKeyPrefixRevoked+p.TokenID, p.ID, ttl).Err(); err != nil {
		s.log.Errorw("Failed to revoke token", "token_id", p.TokenID, "error", err)
		return ErrInternal
	}

	s.log.Infow("Token revoked", "principal", p.ID, "role", p.Role)
	return nil
}

// Authenticate validates a bearer token and checks it has not been revoked.
func (s *AuthService) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	p, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Principal{}, ErrUnauthorized
	}
	if s.denylist == nil {
		return p, nil
	}

	n, err := s.denylist.Exists(ctx, cacheKeyPrefixRevoked+p.TokenID).Result()
	if err != nil {
		s.log.Errorw("Failed to check token revocation", "token_id", p.TokenID, "error", err)
		return auth.Principal{}, ErrInternal
	}
	if n > 0 {
		return auth.Principal{}, ErrUnauthorized
	}
	return p, nil
}

func (s *AuthService) issue(id, name string, role auth.Role) (*Session, error) {
	token, p, err := s.tokens.Issue(id, name, role)
	if err != nil {
		s.log.Errorw("Token signing failed", "error", err)
		return nil, ErrInternal
	}
	return &Session{Token: token, Principal: p}, nil
}

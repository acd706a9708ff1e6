package api

import (
	"context"
	"net/http"
	"time"

	"jewelstore/internal/auth"
	"jewelstore/internal/service"
)

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100" example:"Asha"`
	Mobile   string `json:"mobile" validate:"omitempty,max=20" example:"9876543210"`
	Email    string `json:"email" validate:"required,email" example:"asha@example.com"`
	Password string `json:"password" validate:"required,min=6,max=72" example:"s3cret-pass"`
}

// LoginRequest represents the request body for user and admin login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"asha@example.com"`
	Password string `json:"password" validate:"required" example:"s3cret-pass"`
}

// UserResponse represents a registered user
type UserResponse struct {
	ID     string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name   string `json:"name" example:"Asha"`
	Mobile string `json:"mobile" example:"9876543210"`
	Email  string `json:"email" example:"asha@example.com"`
}

// TokenResponse represents an issued access token
type TokenResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresAt   string `json:"expires_at" example:"2024-01-15T12:15:30Z"`
	Role        string `json:"role" example:"user"`
	Name        string `json:"name,omitempty" example:"Asha"`
}

func tokenResponse(s *service.Session) TokenResponse {
	return TokenResponse{
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresAt:   s.Principal.ExpiresAt.UTC().Format(time.RFC3339),
		Role:        string(s.Principal.Role),
		Name:        s.Principal.Name,
	}
}

// HandleRegister godoc
// @Summary Register a user account
// @Description Creates a shopper account. The password is stored as a bcrypt hash.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} UserResponse "Account created"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /auth/register [post]
func HandleRegister(svc service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), service.RegisterInput{
			Name:     req.Name,
			Mobile:   req.Mobile,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, UserResponse{
			ID:     user.ID.String(),
			Name:   user.Name,
			Mobile: user.Mobile,
			Email:  user.Email,
		})
	}
}

// HandleLogin godoc
// @Summary User login
// @Description Verifies email and password and returns a bearer token for shopper endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse "Logged in"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /auth/login [post]
func HandleLogin(svc service.AuthServiceInterface) http.HandlerFunc {
	return handleLogin(svc.Login)
}

// HandleAdminLogin godoc
// @Summary Admin login
// @Description Verifies the configured admin credentials and returns a bearer token for admin endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} TokenResponse "Logged in"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /auth/admin/login [post]
func HandleAdminLogin(svc service.AuthServiceInterface) http.HandlerFunc {
	return handleLogin(svc.AdminLogin)
}

func handleLogin(login func(ctx context.Context, email, password string) (*service.Session, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		sess, err := login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse(sess))
	}
}

// HandleLogout godoc
// @Summary Logout
// @Description Revokes the bearer token used for this request.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Token revoked"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /auth/logout [post]
func HandleLogout(svc service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
			return
		}
		if err := svc.Logout(r.Context(), p); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

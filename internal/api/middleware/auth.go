package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	"jewelstore/internal/auth"
	"jewelstore/internal/service"
)

// Authenticator validates bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Principal, error)
}

// Authenticate requires a valid, unrevoked bearer token and puts its principal into the request context.
func Authenticate(authn Authenticator, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
				return
			}

			p, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthorized) {
					logger.Warnw("Rejected token", "request_id", RequestIDFromContext(r.Context()), "path", r.URL.Path)
					writeError(w, http.StatusUnauthorized, "Invalid or expired token")
					return
				}
				writeError(w, http.StatusInternalServerError, "Internal error")
				return
			}

			if ww, ok := w.(*responseWriter); ok {
				ww.principal = string(p.Role) + ":" + p.ID
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole rejects principals whose role is not one of roles. It must run after Authenticate.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !slices.Contains(roles, p.Role) {
				writeError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// NewIPLimiter builds an in-memory per-IP limiter from a formatted rate such as "20-M".
func NewIPLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("rate limit %q: %w", formatted, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

// RateLimit rejects requests from an IP that exceeded the limiter's rate.
func RateLimit(lim *limiter.Limiter, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := lim.GetIPKey(r)

			lctx, err := lim.Get(r.Context(), key)
			if err != nil {
				logger.Errorw("Failed to get rate limit context", "ip", key, "error", err)
				writeError(w, http.StatusInternalServerError, "Internal error")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

			if lctx.Reached {
				logger.Warnw("Rate limit exceeded", "ip", key, "path", r.URL.Path, "limit", lctx.Limit)
				writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

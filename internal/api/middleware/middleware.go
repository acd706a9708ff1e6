// Package middleware provides HTTP middleware for request IDs, logging, authentication and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const requestIDKey contextKey = "request_id"
const headerRequestID = "X-Request-Id"

// RequestIDFromContext returns the correlation ID set by RequestIDMiddleware.
func RequestIDFromContext(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey).(string)
	return reqID
}

// RequestIDMiddleware ensures each request has a correlation ID
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(headerRequestID)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)
		w.Header().Set(headerRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestLoggingMiddleware logs each HTTP request and response details
func RequestLoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &responseWriter{ResponseWriter: w, status: 0, size: 0}
			next.ServeHTTP(ww, r)
			duration := time.Since(start)
			if ww.status == 0 {
				ww.status = http.StatusOK
			}
			fields := []any{
				"request_id", RequestIDFromContext(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.status,
				"bytes", ww.size,
				"duration_ms", duration.Milliseconds(),
			}
			if ww.principal != "" {
				fields = append(fields, "principal", ww.principal)
			}
			switch {
			case ww.status >= http.StatusInternalServerError:
				logger.Errorw("HTTP request", fields...)
			case ww.status >= http.StatusBadRequest:
				logger.Warnw("HTTP request", fields...)
			default:
				logger.Infow("HTTP request", fields...)
			}
		})
	}
}

// responseWriter is a wrapper to capture HTTP status, size and the authenticated principal
type responseWriter struct {
	http.ResponseWriter
	status    int
	size      int
	principal string
}

// WriteHeader captures status code
func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write captures the response size
func (rw *responseWriter) Write(b []byte) (int, error) {
	if rw.status == 0 {
		rw.status = http.StatusOK
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError writes a JSON error body in the same shape as the API handlers.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

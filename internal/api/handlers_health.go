package api

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const readinessTimeout = 2 * time.Second

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status string            `json:"status" example:"ready"`
	Checks map[string]string `json:"checks"`
}

type readinessCheck struct {
	name string
	ping func(ctx context.Context) error
}

// HandleHealthz godoc
// @Summary Health check (liveness)
// @Description Always returns 200 OK if the process is serving requests.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}
}

// HandleReadyz godoc
// @Summary Readiness check
// @Description Pings Postgres, the cache Redis and the task queue Redis in parallel. Returns 200 only when all of them answer; the body lists each dependency's state.
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse "All dependencies ready"
// @Failure 503 {object} ReadyResponse "At least one dependency unavailable"
// @Router /readyz [get]
func HandleReadyz(db *sql.DB, cache, asynqRedis *redis.Client) http.HandlerFunc {
	checks := []readinessCheck{{name: "postgres", ping: db.PingContext}}
	if cache != nil {
		checks = append(checks, readinessCheck{name: "cache", ping: func(ctx context.Context) error { return cache.Ping(ctx).Err() }})
	}
	if asynqRedis != nil {
		checks = append(checks, readinessCheck{name: "queue", ping: func(ctx context.Context) error { return asynqRedis.Ping(ctx).Err() }})
	}
	return handleReadiness(checks)
}

func handleReadiness(checks []readinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		results := make([]error, len(checks))
		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				results[i] = c.ping(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := ReadyResponse{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK
		for i, c := range checks {
			if results[i] != nil {
				resp.Checks[c.name] = "unavailable"
				resp.Status = "not ready"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.name] = "ok"
		}
		writeJSON(w, status, resp)
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"jewelstore/internal/repository"
	"jewelstore/internal/service"
)

// RefreshResponse represents an accepted rate refresh request
type RefreshResponse struct {
	Date   string `json:"date" example:"2024-01-15"`
	Status string `json:"status" example:"queued"`
}

// HandleGetRates godoc
// @Summary Today's metal rates
// @Description Returns today's gold and silver rates per gram. The first lookup of a day fetches from the external source, or uses the fallback rates if it fails; later lookups return the stored values.
// @Tags rates
// @Produce json
// @Success 200 {object} RatesResponse "Today's rates"
// @Router /api/rates [get]
func HandleGetRates(rates service.RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lookup := rates.GetRateFor(r.Context(), rates.Today())
		writeJSON(w, http.StatusOK, ratesResponse(lookup))
	}
}

// HandleRateHistory godoc
// @Summary Stored daily rates
// @Description Lists the most recent stored daily rates, newest first. With date, returns only the stored row for that date and never fetches. Dates are parsed leniently (2024-01-15, Jan 15 2024, 15.01.2024) but ambiguous day/month orders are rejected.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param date query string false "Calendar date"
// @Param limit query int false "Maximum rows (default 30)"
// @Success 200 {array} RatesResponse "Stored rates"
// @Failure 400 {object} ErrorResponse "Invalid date or limit"
// @Failure 404 {object} ErrorResponse "No rate stored for the date"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /admin/rates [get]
func HandleRateHistory(svc service.AdminServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
			date, err := dateparse.ParseStrict(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid date: " + raw})
				return
			}
			dr, err := svc.StoredRate(r.Context(), date)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, []RatesResponse{dailyRateResponse(*dr)})
			return
		}

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
				return
			}
			limit = n
		}

		history, err := svc.RateHistory(r.Context(), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]RatesResponse, 0, len(history))
		for _, dr := range history {
			out = append(out, dailyRateResponse(dr))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// HandleRefreshRates godoc
// @Summary Queue a rate lookup for today
// @Description Enqueues the background task that resolves and stores today's rates. A date that already has a stored row is left unchanged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 202 {object} RefreshResponse "Refresh queued"
// @Failure 503 {object} ErrorResponse "Task queue unavailable"
// @Router /admin/rates/refresh [post]
func HandleRefreshRates(rates service.RateProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		today := rates.Today()
		if err := rates.RequestRefresh(r.Context(), today); err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusAccepted, RefreshResponse{Date: today.Format(repository.DateLayout), Status: "queued"})
	}
}

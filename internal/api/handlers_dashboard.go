package api

import (
	"net/http"

	"jewelstore/internal/service"
)

// UserDashboardResponse represents the shopper dashboard
type UserDashboardResponse struct {
	Rates    RatesResponse     `json:"rates"`
	Products []ProductResponse `json:"products"`
}

// AdminDashboardResponse represents the admin dashboard
type AdminDashboardResponse struct {
	TotalUsers    int           `json:"total_users" example:"12"`
	TotalOrders   int           `json:"total_orders" example:"30"`
	TotalProducts int           `json:"total_products" example:"7"`
	Rates         RatesResponse `json:"rates"`
}

// HandleUserDashboard godoc
// @Summary Shopper dashboard
// @Description Today's rates and the products available to order.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserDashboardResponse "Dashboard"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /user/dashboard [get]
func HandleUserDashboard(rates service.RateProvider, catalog service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := catalog.ListInStock(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		lookup := rates.GetRateFor(r.Context(), rates.Today())
		writeJSON(w, http.StatusOK, UserDashboardResponse{
			Rates:    ratesResponse(lookup),
			Products: productsResponse(products),
		})
	}
}

// HandleAdminDashboard godoc
// @Summary Admin dashboard
// @Description Totals of users, orders and products with today's rates.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AdminDashboardResponse "Dashboard"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /admin/dashboard [get]
func HandleAdminDashboard(svc service.AdminServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AdminDashboardResponse{
			TotalUsers:    stats.TotalUsers,
			TotalOrders:   stats.TotalOrders,
			TotalProducts: stats.TotalProducts,
			Rates:         ratesResponse(stats.Rates),
		})
	}
}

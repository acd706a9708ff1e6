package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jewelstore/internal/auth"
	"jewelstore/internal/service"
)

// PlaceOrderRequest represents the request body for placing an order
type PlaceOrderRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid" example:"123e4567-e89b-12d3-a456-426614174000"`
	Weight    decimal.Decimal `json:"weight" swaggertype:"string" example:"2.5"`
}

// UpdateStatusRequest represents the request body for changing an order's status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Confirmed Shipped Delivered Cancelled" example:"Shipped"`
}

// principalUserID returns the authenticated shopper's id.
func principalUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	p, ok := auth.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(p.ID)
	if err != nil {
		writeJSON(w, http.StatusForbidden, ErrorResponse{Error: "Forbidden"})
		return uuid.Nil, false
	}
	return id, true
}

// HandlePlaceOrder godoc
// @Summary Place an order
// @Description Orders weight grams of an in-stock product. The rate is today's rate for the product's metal and the total is weight × rate rounded to two decimals.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlaceOrderRequest true "Order"
// @Success 201 {object} OrderResponse "Order placed"
// @Failure 400 {object} ErrorResponse "Invalid order"
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Failure 409 {object} ErrorResponse "Product out of stock"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /user/orders [post]
func HandlePlaceOrder(svc service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := principalUserID(w, r)
		if !ok {
			return
		}
		var req PlaceOrderRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !req.Weight.IsPositive() {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "weight must be greater than zero"})
			return
		}
		if !req.Weight.Equal(req.Weight.Round(service.WeightPlaces)) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "weight must have at most 3 decimal places"})
			return
		}

		order, err := svc.PlaceOrder(r.Context(), userID, uuid.MustParse(req.ProductID), req.Weight)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, orderResponse(*order))
	}
}

// HandleListMyOrders godoc
// @Summary My orders
// @Description Lists the caller's orders, newest first.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse "Orders"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /user/orders [get]
func HandleListMyOrders(svc service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := principalUserID(w, r)
		if !ok {
			return
		}
		orders, err := svc.ListUserOrders(r.Context(), userID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, orderDetailsResponse(orders, false))
	}
}

// HandleListAllOrders godoc
// @Summary All orders
// @Description Lists every order with buyer and product, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse "Orders"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /admin/orders [get]
func HandleListAllOrders(svc service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := svc.ListAllOrders(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, orderDetailsResponse(orders, true))
	}
}

// HandleUpdateOrderStatus godoc
// @Summary Change an order's status
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Order ID" format(uuid)
// @Param request body UpdateStatusRequest true "New status"
// @Success 204 "Updated"
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 404 {object} ErrorResponse "Unknown order"
// @Router /admin/orders/{id}/status [put]
func HandleUpdateOrderStatus(svc service.OrderServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}
		var req UpdateStatusRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

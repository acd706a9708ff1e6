// Package api implements HTTP handlers for the jewellery storefront.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"jewelstore/internal/repository"
	"jewelstore/internal/service"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error" example:"product out of stock"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// decodeJSON decodes the request body into dst and validates its struct tags.
// On failure it writes a 400 response and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: validationMessage(err)})
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// writeServiceError maps service sentinel errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrOutOfStock), errors.Is(err, service.ErrInUse):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInternalQueue):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Task queue unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}

// RatesResponse represents the gold and silver rates for one date
type RatesResponse struct {
	Date    string `json:"date" example:"2024-01-15"`
	Gold    string `json:"gold" example:"6500.00"`
	Silver  string `json:"silver" example:"75.00"`
	Source  string `json:"source" example:"metalpriceapi"`
	Origin  string `json:"origin,omitempty" example:"cache"`
	Outcome string `json:"outcome,omitempty" example:"success"`
}

func ratesResponse(l service.RateLookup) RatesResponse {
	resp := dailyRateResponse(l.Rate)
	resp.Origin = string(l.Origin)
	resp.Outcome = string(l.Outcome)
	return resp
}

func dailyRateResponse(dr repository.DailyRate) RatesResponse {
	return RatesResponse{
		Date:   dr.Date.Format(repository.DateLayout),
		Gold:   dr.GoldRate.StringFixed(2),
		Silver: dr.SilverRate.StringFixed(2),
		Source: dr.Source,
	}
}

// ProductResponse represents a catalog product
type ProductResponse struct {
	ID         string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string `json:"name" example:"Temple Necklace"`
	Type       string `json:"type" example:"Gold"`
	BaseWeight string `json:"base_weight" example:"12.500"`
	Stock      int    `json:"stock" example:"4"`
	CreatedAt  string `json:"created_at" example:"2024-01-15T10:15:30Z"`
}

func productResponse(p repository.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		Type:       p.Type,
		BaseWeight: p.BaseWeight.String(),
		Stock:      p.Stock,
		CreatedAt:  p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func productsResponse(products []repository.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse(p))
	}
	return out
}

// OrderResponse represents an order with its product, and its buyer in admin listings
type OrderResponse struct {
	ID          string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	ProductID   string `json:"product_id" example:"123e4567-e89b-12d3-a456-426614174001"`
	ProductName string `json:"product_name,omitempty" example:"Temple Necklace"`
	ProductType string `json:"product_type,omitempty" example:"Gold"`
	UserName    string `json:"user_name,omitempty" example:"Asha"`
	UserEmail   string `json:"user_email,omitempty" example:"asha@example.com"`
	Weight      string `json:"weight" example:"2.5"`
	Rate        string `json:"rate" example:"6500.00"`
	TotalAmount string `json:"total_amount" example:"16250.00"`
	Status      string `json:"status" example:"Pending"`
	OrderDate   string `json:"order_date" example:"2024-01-15T10:15:30Z"`
}

func orderResponse(o repository.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID.String(),
		ProductID:   o.ProductID.String(),
		Weight:      o.Weight.String(),
		Rate:        o.Rate.StringFixed(2),
		TotalAmount: o.TotalAmount.StringFixed(2),
		Status:      o.Status,
		OrderDate:   o.OrderDate.UTC().Format(time.RFC3339),
	}
}

func orderDetailsResponse(orders []repository.OrderDetails, withUser bool) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, d := range orders {
		resp := orderResponse(d.Order)
		resp.ProductName = d.ProductName
		resp.ProductType = d.ProductType
		if withUser {
			resp.UserName = d.UserName
			resp.UserEmail = d.UserEmail
		}
		out = append(out, resp)
	}
	return out
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jewelstore/internal/service"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	Name       string          `json:"name" validate:"required,max=200" example:"Temple Necklace"`
	Type       string          `json:"type" validate:"required,oneof=Gold Silver gold silver" example:"Gold"`
	BaseWeight decimal.Decimal `json:"base_weight" swaggertype:"string" example:"12.500"`
	Stock      int             `json:"stock" validate:"gte=0" example:"4"`
}

func (p ProductRequest) input() service.ProductInput {
	return service.ProductInput{Name: p.Name, Type: p.Type, BaseWeight: p.BaseWeight, Stock: p.Stock}
}

// pathUUID parses a UUID path parameter, writing a 400 response when it is malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// HandleListInStock godoc
// @Summary Products available to order
// @Description Lists products with stock above zero.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse "In-stock products"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /user/products [get]
func HandleListInStock(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListInStock(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productsResponse(products))
	}
}

// HandleListProducts godoc
// @Summary All products
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ProductResponse "Catalog"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /admin/products [get]
func HandleListProducts(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productsResponse(products))
	}
}

// HandleCreateProduct godoc
// @Summary Create a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ProductRequest true "Product"
// @Success 201 {object} ProductResponse "Created"
// @Failure 400 {object} ErrorResponse "Invalid product"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /admin/products [post]
func HandleCreateProduct(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProductRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := svc.CreateProduct(r.Context(), req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, productResponse(*p))
	}
}

// HandleGetProduct godoc
// @Summary Get a product
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID" format(uuid)
// @Success 200 {object} ProductResponse "Product"
// @Failure 400 {object} ErrorResponse "Invalid id"
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Router /admin/products/{id} [get]
func HandleGetProduct(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}
		p, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productResponse(*p))
	}
}

// HandleUpdateProduct godoc
// @Summary Update a product
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID" format(uuid)
// @Param request body ProductRequest true "Product"
// @Success 200 {object} ProductResponse "Updated"
// @Failure 400 {object} ErrorResponse "Invalid product"
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Router /admin/products/{id} [put]
func HandleUpdateProduct(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}
		var req ProductRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := svc.UpdateProduct(r.Context(), id, req.input())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, productResponse(*p))
	}
}

// HandleDeleteProduct godoc
// @Summary Delete a product
// @Description Deletes a product that no order references.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Product ID" format(uuid)
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Unknown product"
// @Failure 409 {object} ErrorResponse "Product has orders"
// @Router /admin/products/{id} [delete]
func HandleDeleteProduct(svc service.CatalogServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathUUID(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

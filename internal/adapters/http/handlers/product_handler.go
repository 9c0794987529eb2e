package handlers

import (
	"net/http"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/ports"
)

// ProductHandler handles HTTP requests for catalog product operations.
type ProductHandler struct {
	svc ports.ProductService
}

// NewProductHandler creates a new ProductHandler with the given service port.
func NewProductHandler(svc ports.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// GetProduct handles GET /api/v1/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(product))
}

// CreateProduct handles POST /api/v1/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateProduct(r.Context(), mapCreateProductRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProductResponse(created))
}

// UpdateProduct handles PATCH /api/v1/products/{id}.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	applyProductUpdate(current, &req)

	updated, err := h.svc.UpdateProduct(r.Context(), id, current)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProductResponse(updated))
}

// DeleteProduct handles DELETE /api/v1/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteProduct(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdatePrices handles PUT /api/v1/products/prices.
func (h *ProductHandler) BulkUpdatePrices(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkUpdatePricesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.BulkUpdatePrices(r.Context(), mapPriceUpdates(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBatchResultResponse(result))
}

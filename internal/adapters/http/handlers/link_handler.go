// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/ports"
)

// LinkHandler handles HTTP requests for marketplace link operations.
type LinkHandler struct {
	svc ports.LinkService
}

// NewLinkHandler creates a new LinkHandler with the given service port.
func NewLinkHandler(svc ports.LinkService) *LinkHandler {
	return &LinkHandler{svc: svc}
}

// GetLink handles GET /api/v1/links/{id}.
func (h *LinkHandler) GetLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	link, err := h.svc.GetLink(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(link))
}

// ListProductLinks handles GET /api/v1/products/{productId}/links.
func (h *LinkHandler) ListProductLinks(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUUID(r, "productId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	links, err := h.svc.ListProductLinks(r.Context(), productID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkListResponse(links))
}

// CreateLink handles POST /api/v1/links.
func (h *LinkHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLinkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateLink(r.Context(), mapCreateLinkRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToLinkResponse(created))
}

// UpdateLink handles PATCH /api/v1/links/{id}.
func (h *LinkHandler) UpdateLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateLinkRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, err := h.svc.GetLink(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	applyLinkUpdate(current, &req)

	updated, err := h.svc.UpdateLink(r.Context(), id, current)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(updated))
}

// UpdateLinkPrice handles PUT /api/v1/links/{id}/price.
func (h *LinkHandler) UpdateLinkPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateLinkPriceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	price, _ := decimal.NewFromString(req.Price)

	updated, err := h.svc.UpdatePrice(r.Context(), id, price)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToLinkResponse(updated))
}

// DeleteLink handles DELETE /api/v1/links/{id}.
func (h *LinkHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteLink(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BulkUpdatePositions handles PUT /api/v1/links/positions.
func (h *LinkHandler) BulkUpdatePositions(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkUpdatePositionsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.BulkUpdatePositions(r.Context(), mapPositionUpdates(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBatchResultResponse(result))
}

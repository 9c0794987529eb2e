package handlers

import (
	"fmt"
	"net/http"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// MarketplaceHandler handles HTTP requests for marketplace operations.
type MarketplaceHandler struct {
	svc ports.MarketplaceService
}

// NewMarketplaceHandler creates a new MarketplaceHandler with the given
// service port.
func NewMarketplaceHandler(svc ports.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

// ListMarketplaces handles GET /api/v1/marketplaces.
func (h *MarketplaceHandler) ListMarketplaces(w http.ResponseWriter, r *http.Request) {
	marketplaces, err := h.svc.ListMarketplaces(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMarketplaceListResponse(marketplaces))
}

// CreateMarketplace handles POST /api/v1/marketplaces.
func (h *MarketplaceHandler) CreateMarketplace(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMarketplaceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateMarketplace(r.Context(), mapCreateMarketplaceRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToMarketplaceResponse(created))
}

// UpdateMarketplace handles PATCH /api/v1/marketplaces/{id}.
func (h *MarketplaceHandler) UpdateMarketplace(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateMarketplaceRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	marketplaces, err := h.svc.ListMarketplaces(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	var current *domain.Marketplace
	for i := range marketplaces {
		if marketplaces[i].ID == id {
			current = &marketplaces[i]
			break
		}
	}
	if current == nil {
		dto.WriteErrorResponse(w, r, fmt.Errorf("marketplace %s: %w", id, domain.ErrNotFound))
		return
	}
	applyMarketplaceUpdate(current, &req)

	updated, err := h.svc.UpdateMarketplace(r.Context(), id, current)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToMarketplaceResponse(updated))
}

package handlers

import (
	"net/http"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/ports"
)

// AdminHandler handles HTTP requests for admin account operations.
type AdminHandler struct {
	svc ports.AdminService
}

// NewAdminHandler creates a new AdminHandler with the given service port.
func NewAdminHandler(svc ports.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListAdmins handles GET /api/v1/admins.
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.svc.ListAdmins(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAdminListResponse(admins))
}

// GetAdmin handles GET /api/v1/admins/{id}.
func (h *AdminHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	admin, err := h.svc.GetAdmin(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAdminResponse(admin))
}

// CreateAdmin handles POST /api/v1/admins.
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAdminRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateAdmin(r.Context(), mapCreateAdminRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToAdminResponse(created))
}

// UpdateAdmin handles PATCH /api/v1/admins/{id}.
func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateAdminRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	current, err := h.svc.GetAdmin(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	applyAdminUpdate(current, &req)

	updated, err := h.svc.UpdateAdmin(r.Context(), id, current)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToAdminResponse(updated))
}

// BulkArchiveAdmins handles POST /api/v1/admins/archive.
func (h *AdminHandler) BulkArchiveAdmins(w http.ResponseWriter, r *http.Request) {
	var req dto.BulkArchiveAdminsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.svc.BulkArchive(r.Context(), mapArchiveIDs(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBatchResultResponse(result))
}

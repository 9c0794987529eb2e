package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// CategoryHandler handles HTTP requests for category tree operations.
type CategoryHandler struct {
	svc ports.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler with the given service port.
func NewCategoryHandler(svc ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// GetTree handles GET /api/v1/categories.
func (h *CategoryHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.GetTree(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCategoryListResponse(categories))
}

// CreateCategory handles POST /api/v1/categories.
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateCategory(r.Context(), mapCreateCategoryRequest(&req))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToCategoryResponse(created))
}

// UpdateCategory handles PATCH /api/v1/categories/{id}.
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateCategoryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	// Read-modify-write: PATCH semantics over the service's full update.
	tree, err := h.svc.GetTree(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	current := findCategory(tree, id)
	if current == nil {
		dto.WriteErrorResponse(w, r, fmt.Errorf("category %s: %w", id, domain.ErrNotFound))
		return
	}
	applyCategoryUpdate(current, &req)

	updated, err := h.svc.UpdateCategory(r.Context(), id, current)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToCategoryResponse(updated))
}

// DeleteCategory handles DELETE /api/v1/categories/{id}.
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.DeleteCategory(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// findCategory returns the category with the given ID from the tree, or nil.
func findCategory(tree []domain.Category, id uuid.UUID) *domain.Category {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i]
		}
	}
	return nil
}

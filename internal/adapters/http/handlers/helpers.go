package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// parseUUID extracts a UUID path parameter from the chi URL params.
func parseUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, &domain.ValidationError{
			Fields: map[string]string{param: "must be a valid UUID"},
		}
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// decodeJSONBody decodes the request body as JSON into dst. The body is
// limited to maxJSONBodyBytes to prevent resource exhaustion. On failure,
// it writes a 400 error response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid JSON"},
		})
		return false
	}
	return true
}

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes an error response and returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, dst T) bool {
	if !decodeJSONBody(w, r, dst) {
		return false
	}
	if err := dst.Validate(); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return false
	}
	return true
}

// The map/apply helpers below assume their request has already been
// validated, so the UUID and decimal parses cannot fail.

// mapCreateLinkRequest converts a validated CreateLinkRequest to a domain Link.
func mapCreateLinkRequest(req *dto.CreateLinkRequest) *domain.Link {
	productID, _ := uuid.Parse(req.ProductID)
	marketplaceID, _ := uuid.Parse(req.MarketplaceID)
	price, _ := decimal.NewFromString(req.Price)

	l := &domain.Link{
		ProductID:     productID,
		MarketplaceID: marketplaceID,
		URL:           req.URL,
		Price:         price,
		Position:      req.Position,
		Status:        domain.LinkActive,
	}
	if req.Status != "" {
		l.Status = domain.LinkStatus(req.Status)
	}
	return l
}

// applyLinkUpdate overlays the provided fields of a validated
// UpdateLinkRequest onto the current link state.
func applyLinkUpdate(link *domain.Link, req *dto.UpdateLinkRequest) {
	if req.MarketplaceID != nil {
		link.MarketplaceID, _ = uuid.Parse(*req.MarketplaceID)
	}
	if req.URL != nil {
		link.URL = *req.URL
	}
	if req.Price != nil {
		link.Price, _ = decimal.NewFromString(*req.Price)
	}
	if req.Position != nil {
		link.Position = *req.Position
	}
	if req.Status != nil {
		link.Status = domain.LinkStatus(*req.Status)
	}
}

// mapPositionUpdates converts a validated BulkUpdatePositionsRequest to
// service input.
func mapPositionUpdates(req *dto.BulkUpdatePositionsRequest) []ports.LinkPositionUpdate {
	updates := make([]ports.LinkPositionUpdate, len(req.Updates))
	for i, u := range req.Updates {
		id, _ := uuid.Parse(u.LinkID)
		updates[i] = ports.LinkPositionUpdate{LinkID: id, Position: u.Position}
	}
	return updates
}

// mapCreateCategoryRequest converts a validated CreateCategoryRequest to a
// domain Category.
func mapCreateCategoryRequest(req *dto.CreateCategoryRequest) *domain.Category {
	c := &domain.Category{
		Name:     req.Name,
		Slug:     req.Slug,
		Position: req.Position,
	}
	if req.ParentID != nil {
		parent, _ := uuid.Parse(*req.ParentID)
		c.ParentID = &parent
	}
	return c
}

// applyCategoryUpdate overlays the provided fields of a validated
// UpdateCategoryRequest onto the current category state. An empty parent_id
// moves the category to the root.
func applyCategoryUpdate(category *domain.Category, req *dto.UpdateCategoryRequest) {
	if req.ParentID != nil {
		if *req.ParentID == "" {
			category.ParentID = nil
		} else {
			parent, _ := uuid.Parse(*req.ParentID)
			category.ParentID = &parent
		}
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Position != nil {
		category.Position = *req.Position
	}
}

// mapCreateProductRequest converts a validated CreateProductRequest to a
// domain Product.
func mapCreateProductRequest(req *dto.CreateProductRequest) *domain.Product {
	categoryID, _ := uuid.Parse(req.CategoryID)
	price, _ := decimal.NewFromString(req.Price)

	p := &domain.Product{
		CategoryID: categoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		Price:      price,
		Status:     domain.ProductDraft,
	}
	if req.Status != "" {
		p.Status = domain.ProductStatus(req.Status)
	}
	return p
}

// applyProductUpdate overlays the provided fields of a validated
// UpdateProductRequest onto the current product state.
func applyProductUpdate(product *domain.Product, req *dto.UpdateProductRequest) {
	if req.CategoryID != nil {
		product.CategoryID, _ = uuid.Parse(*req.CategoryID)
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Price != nil {
		product.Price, _ = decimal.NewFromString(*req.Price)
	}
	if req.Status != nil {
		product.Status = domain.ProductStatus(*req.Status)
	}
}

// mapPriceUpdates converts a validated BulkUpdatePricesRequest to service
// input.
func mapPriceUpdates(req *dto.BulkUpdatePricesRequest) []ports.ProductPriceUpdate {
	updates := make([]ports.ProductPriceUpdate, len(req.Updates))
	for i, u := range req.Updates {
		id, _ := uuid.Parse(u.ProductID)
		price, _ := decimal.NewFromString(u.Price)
		updates[i] = ports.ProductPriceUpdate{ProductID: id, Price: price}
	}
	return updates
}

// mapCreateAdminRequest converts a validated CreateAdminRequest to a domain
// Admin. New accounts start active.
func mapCreateAdminRequest(req *dto.CreateAdminRequest) *domain.Admin {
	a := &domain.Admin{
		Email:  req.Email,
		Name:   req.Name,
		Role:   domain.RoleAdmin,
		Status: domain.AdminActive,
	}
	if req.Role != "" {
		a.Role = domain.AdminRole(req.Role)
	}
	return a
}

// applyAdminUpdate overlays the provided fields of a validated
// UpdateAdminRequest onto the current admin state.
func applyAdminUpdate(admin *domain.Admin, req *dto.UpdateAdminRequest) {
	if req.Name != nil {
		admin.Name = *req.Name
	}
	if req.Role != nil {
		admin.Role = domain.AdminRole(*req.Role)
	}
	if req.Status != nil {
		admin.Status = domain.AdminStatus(*req.Status)
	}
}

// mapArchiveIDs converts a validated BulkArchiveAdminsRequest to service
// input.
func mapArchiveIDs(req *dto.BulkArchiveAdminsRequest) []uuid.UUID {
	ids := make([]uuid.UUID, len(req.IDs))
	for i, raw := range req.IDs {
		ids[i], _ = uuid.Parse(raw)
	}
	return ids
}

// mapCreateMarketplaceRequest converts a validated CreateMarketplaceRequest
// to a domain Marketplace.
func mapCreateMarketplaceRequest(req *dto.CreateMarketplaceRequest) *domain.Marketplace {
	m := &domain.Marketplace{
		Name:   req.Name,
		Slug:   req.Slug,
		Domain: req.Domain,
		Status: domain.MarketplaceActive,
	}
	if req.Status != "" {
		m.Status = domain.MarketplaceStatus(req.Status)
	}
	return m
}

// applyMarketplaceUpdate overlays the provided fields of a validated
// UpdateMarketplaceRequest onto the current marketplace state.
func applyMarketplaceUpdate(m *domain.Marketplace, req *dto.UpdateMarketplaceRequest) {
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Slug != nil {
		m.Slug = *req.Slug
	}
	if req.Domain != nil {
		m.Domain = *req.Domain
	}
	if req.Status != nil {
		m.Status = domain.MarketplaceStatus(*req.Status)
	}
}

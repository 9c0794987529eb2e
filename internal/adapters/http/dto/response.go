// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/linkmart/admin-api/internal/domain"
	"github.com/linkmart/admin-api/internal/ports"
)

// LinkResponse represents a single marketplace link in HTTP responses.
// Price is a decimal string.
type LinkResponse struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	MarketplaceID string `json:"marketplace_id"`
	URL           string `json:"url"`
	Price         string `json:"price"`
	Position      int    `json:"position"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// LinkListResponse represents a list of links in HTTP responses.
type LinkListResponse struct {
	Links []LinkResponse `json:"links"`
	Count int            `json:"count"`
}

// ToLinkResponse converts a domain Link entity to an HTTP response DTO.
func ToLinkResponse(l *domain.Link) LinkResponse {
	return LinkResponse{
		ID:            l.ID.String(),
		ProductID:     l.ProductID.String(),
		MarketplaceID: l.MarketplaceID.String(),
		URL:           l.URL,
		Price:         l.Price.String(),
		Position:      l.Position,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
}

// ToLinkListResponse converts a slice of domain Link entities to an HTTP
// list response DTO.
func ToLinkListResponse(links []domain.Link) LinkListResponse {
	items := make([]LinkResponse, len(links))
	for i := range links {
		items[i] = ToLinkResponse(&links[i])
	}
	return LinkListResponse{
		Links: items,
		Count: len(items),
	}
}

// CategoryResponse represents a single category in HTTP responses.
type CategoryResponse struct {
	ID        string  `json:"id"`
	ParentID  *string `json:"parent_id,omitempty"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Position  int     `json:"position"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CategoryListResponse represents the flat category tree in HTTP responses.
// Clients rebuild the hierarchy from parent_id references.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Count      int                `json:"count"`
}

// ToCategoryResponse converts a domain Category entity to an HTTP response DTO.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	resp := CategoryResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Slug:      c.Slug,
		Position:  c.Position,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
	if c.ParentID != nil {
		parent := c.ParentID.String()
		resp.ParentID = &parent
	}
	return resp
}

// ToCategoryListResponse converts a slice of domain Category entities to an
// HTTP list response DTO.
func ToCategoryListResponse(categories []domain.Category) CategoryListResponse {
	items := make([]CategoryResponse, len(categories))
	for i := range categories {
		items[i] = ToCategoryResponse(&categories[i])
	}
	return CategoryListResponse{
		Categories: items,
		Count:      len(items),
	}
}

// ProductResponse represents a single product in HTTP responses.
type ProductResponse struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Price      string `json:"price"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// ToProductResponse converts a domain Product entity to an HTTP response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID.String(),
		CategoryID: p.CategoryID.String(),
		Name:       p.Name,
		Slug:       p.Slug,
		Price:      p.Price.String(),
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

// AdminResponse represents a single admin account in HTTP responses.
type AdminResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// AdminListResponse represents a list of admin accounts in HTTP responses.
type AdminListResponse struct {
	Admins []AdminResponse `json:"admins"`
	Count  int             `json:"count"`
}

// ToAdminResponse converts a domain Admin entity to an HTTP response DTO.
func ToAdminResponse(a *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        a.ID.String(),
		Email:     a.Email,
		Name:      a.Name,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAdminListResponse converts a slice of domain Admin entities to an HTTP
// list response DTO.
func ToAdminListResponse(admins []domain.Admin) AdminListResponse {
	items := make([]AdminResponse, len(admins))
	for i := range admins {
		items[i] = ToAdminResponse(&admins[i])
	}
	return AdminListResponse{
		Admins: items,
		Count:  len(items),
	}
}

// MarketplaceResponse represents a single marketplace in HTTP responses.
type MarketplaceResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Domain    string `json:"domain"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// MarketplaceListResponse represents a list of marketplaces in HTTP responses.
type MarketplaceListResponse struct {
	Marketplaces []MarketplaceResponse `json:"marketplaces"`
	Count        int                   `json:"count"`
}

// ToMarketplaceResponse converts a domain Marketplace entity to an HTTP
// response DTO.
func ToMarketplaceResponse(m *domain.Marketplace) MarketplaceResponse {
	return MarketplaceResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Slug:      m.Slug,
		Domain:    m.Domain,
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
		UpdatedAt: m.UpdatedAt.Format(time.RFC3339),
	}
}

// ToMarketplaceListResponse converts a slice of domain Marketplace entities
// to an HTTP list response DTO.
func ToMarketplaceListResponse(marketplaces []domain.Marketplace) MarketplaceListResponse {
	items := make([]MarketplaceResponse, len(marketplaces))
	for i := range marketplaces {
		items[i] = ToMarketplaceResponse(&marketplaces[i])
	}
	return MarketplaceListResponse{
		Marketplaces: items,
		Count:        len(items),
	}
}

// BatchItemResponse represents one item's outcome in a bulk operation
// response.
type BatchItemResponse struct {
	Index  int    `json:"index"`
	Key    string `json:"key"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BatchResultResponse represents the outcome of a bulk operation. Items are
// in input order; the overall HTTP status is 200 even when some items failed.
type BatchResultResponse struct {
	Total     int                 `json:"total"`
	Succeeded int                 `json:"succeeded"`
	Failed    int                 `json:"failed"`
	Skipped   int                 `json:"skipped"`
	Items     []BatchItemResponse `json:"items"`
}

// ToBatchResultResponse converts a ports.BatchResult to an HTTP response DTO.
func ToBatchResultResponse(result *ports.BatchResult) BatchResultResponse {
	items := make([]BatchItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = BatchItemResponse{
			Index:  item.Index,
			Key:    item.Key,
			Status: string(item.Status),
			Error:  item.Error,
		}
	}
	return BatchResultResponse{
		Total:     result.Total,
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Skipped:   result.Skipped,
		Items:     items,
	}
}

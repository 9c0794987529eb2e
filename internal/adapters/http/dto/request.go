package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/linkmart/admin-api/internal/domain"
)

const (
	msgRequired     = "is required"
	msgMustNotEmpty = "must not be empty"
)

// validUUID reports whether s parses as a UUID.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// validDecimal reports whether s parses as a decimal number.
func validDecimal(s string) bool {
	_, err := decimal.NewFromString(s)
	return err == nil
}

// CreateLinkRequest represents the JSON body for creating a marketplace link.
// Price is a decimal string to avoid float rounding on money values.
type CreateLinkRequest struct {
	ProductID     string `json:"product_id"`
	MarketplaceID string `json:"marketplace_id"`
	URL           string `json:"url"`
	Price         string `json:"price"`
	Position      int    `json:"position,omitempty"`
	Status        string `json:"status,omitempty"`
}

// Validate checks that required fields are present and parseable.
// Returns a *domain.ValidationError if any checks fail.
func (r *CreateLinkRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(r.ProductID) == "":
		fields["product_id"] = msgRequired
	case !validUUID(r.ProductID):
		fields["product_id"] = fmt.Sprintf("invalid UUID: %q", r.ProductID)
	}
	switch {
	case strings.TrimSpace(r.MarketplaceID) == "":
		fields["marketplace_id"] = msgRequired
	case !validUUID(r.MarketplaceID):
		fields["marketplace_id"] = fmt.Sprintf("invalid UUID: %q", r.MarketplaceID)
	}
	if strings.TrimSpace(r.URL) == "" {
		fields["url"] = msgRequired
	}
	switch {
	case strings.TrimSpace(r.Price) == "":
		fields["price"] = msgRequired
	case !validDecimal(r.Price):
		fields["price"] = fmt.Sprintf("invalid decimal: %q", r.Price)
	}
	if r.Status != "" && !domain.LinkStatus(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateLinkRequest represents the JSON body for updating an existing link.
// All fields are optional; nil means "do not change this field".
type UpdateLinkRequest struct {
	MarketplaceID *string `json:"marketplace_id,omitempty"`
	URL           *string `json:"url,omitempty"`
	Price         *string `json:"price,omitempty"`
	Position      *int    `json:"position,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateLinkRequest) Validate() error {
	fields := make(map[string]string)

	if r.MarketplaceID != nil && !validUUID(*r.MarketplaceID) {
		fields["marketplace_id"] = fmt.Sprintf("invalid UUID: %q", *r.MarketplaceID)
	}
	if r.URL != nil && strings.TrimSpace(*r.URL) == "" {
		fields["url"] = msgMustNotEmpty
	}
	if r.Price != nil && !validDecimal(*r.Price) {
		fields["price"] = fmt.Sprintf("invalid decimal: %q", *r.Price)
	}
	if r.Status != nil && !domain.LinkStatus(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateLinkPriceRequest represents the JSON body for a price change.
type UpdateLinkPriceRequest struct {
	Price string `json:"price"`
}

// Validate checks that the price is present and parseable.
func (r *UpdateLinkPriceRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(r.Price) == "":
		fields["price"] = msgRequired
	case !validDecimal(r.Price):
		fields["price"] = fmt.Sprintf("invalid decimal: %q", r.Price)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// LinkPositionUpdateRequest is one entry in a bulk reorder request.
type LinkPositionUpdateRequest struct {
	LinkID   string `json:"link_id"`
	Position int    `json:"position"`
}

// BulkUpdatePositionsRequest represents the JSON body for bulk link reorders.
type BulkUpdatePositionsRequest struct {
	Updates []LinkPositionUpdateRequest `json:"updates"`
}

// Validate checks that the update list is present and every entry parses.
func (r *BulkUpdatePositionsRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Updates) == 0 {
		fields["updates"] = msgMustNotEmpty
	}
	for i, u := range r.Updates {
		if !validUUID(u.LinkID) {
			fields[fmt.Sprintf("updates[%d].link_id", i)] = fmt.Sprintf("invalid UUID: %q", u.LinkID)
		}
		if u.Position < 0 {
			fields[fmt.Sprintf("updates[%d].position", i)] = "must not be negative"
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateCategoryRequest represents the JSON body for creating a category.
type CreateCategoryRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Position int     `json:"position,omitempty"`
}

// Validate checks that required fields are present and parseable.
func (r *CreateCategoryRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.Slug) == "" {
		fields["slug"] = msgRequired
	}
	if r.ParentID != nil && !validUUID(*r.ParentID) {
		fields["parent_id"] = fmt.Sprintf("invalid UUID: %q", *r.ParentID)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateCategoryRequest represents the JSON body for updating a category.
// All fields are optional; nil means "do not change this field". ParentID
// set to an empty string moves the category to the root.
type UpdateCategoryRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Name     *string `json:"name,omitempty"`
	Slug     *string `json:"slug,omitempty"`
	Position *int    `json:"position,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateCategoryRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Slug != nil && strings.TrimSpace(*r.Slug) == "" {
		fields["slug"] = msgMustNotEmpty
	}
	if r.ParentID != nil && *r.ParentID != "" && !validUUID(*r.ParentID) {
		fields["parent_id"] = fmt.Sprintf("invalid UUID: %q", *r.ParentID)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateProductRequest represents the JSON body for creating a product.
type CreateProductRequest struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Price      string `json:"price"`
	Status     string `json:"status,omitempty"`
}

// Validate checks that required fields are present and parseable.
func (r *CreateProductRequest) Validate() error {
	fields := make(map[string]string)

	switch {
	case strings.TrimSpace(r.CategoryID) == "":
		fields["category_id"] = msgRequired
	case !validUUID(r.CategoryID):
		fields["category_id"] = fmt.Sprintf("invalid UUID: %q", r.CategoryID)
	}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.Slug) == "" {
		fields["slug"] = msgRequired
	}
	switch {
	case strings.TrimSpace(r.Price) == "":
		fields["price"] = msgRequired
	case !validDecimal(r.Price):
		fields["price"] = fmt.Sprintf("invalid decimal: %q", r.Price)
	}
	if r.Status != "" && !domain.ProductStatus(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateProductRequest represents the JSON body for updating a product.
// All fields are optional; nil means "do not change this field".
type UpdateProductRequest struct {
	CategoryID *string `json:"category_id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Slug       *string `json:"slug,omitempty"`
	Price      *string `json:"price,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateProductRequest) Validate() error {
	fields := make(map[string]string)

	if r.CategoryID != nil && !validUUID(*r.CategoryID) {
		fields["category_id"] = fmt.Sprintf("invalid UUID: %q", *r.CategoryID)
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Slug != nil && strings.TrimSpace(*r.Slug) == "" {
		fields["slug"] = msgMustNotEmpty
	}
	if r.Price != nil && !validDecimal(*r.Price) {
		fields["price"] = fmt.Sprintf("invalid decimal: %q", *r.Price)
	}
	if r.Status != nil && !domain.ProductStatus(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ProductPriceUpdateRequest is one entry in a bulk reprice request.
type ProductPriceUpdateRequest struct {
	ProductID string `json:"product_id"`
	Price     string `json:"price"`
}

// BulkUpdatePricesRequest represents the JSON body for bulk product repricing.
type BulkUpdatePricesRequest struct {
	Updates []ProductPriceUpdateRequest `json:"updates"`
}

// Validate checks that the update list is present and every entry parses.
func (r *BulkUpdatePricesRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.Updates) == 0 {
		fields["updates"] = msgMustNotEmpty
	}
	for i, u := range r.Updates {
		if !validUUID(u.ProductID) {
			fields[fmt.Sprintf("updates[%d].product_id", i)] = fmt.Sprintf("invalid UUID: %q", u.ProductID)
		}
		if !validDecimal(u.Price) {
			fields[fmt.Sprintf("updates[%d].price", i)] = fmt.Sprintf("invalid decimal: %q", u.Price)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateAdminRequest represents the JSON body for creating an admin account.
type CreateAdminRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// Validate checks that required fields are present and the role is known.
func (r *CreateAdminRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Email) == "" {
		fields["email"] = msgRequired
	}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if r.Role != "" && !domain.AdminRole(r.Role).IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", r.Role)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateAdminRequest represents the JSON body for updating an admin account.
// All fields are optional; nil means "do not change this field".
type UpdateAdminRequest struct {
	Name   *string `json:"name,omitempty"`
	Role   *string `json:"role,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateAdminRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Role != nil && !domain.AdminRole(*r.Role).IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", *r.Role)
	}
	if r.Status != nil && !domain.AdminStatus(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// BulkArchiveAdminsRequest represents the JSON body for bulk admin archival.
type BulkArchiveAdminsRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks that the ID list is present and every entry parses.
func (r *BulkArchiveAdminsRequest) Validate() error {
	fields := make(map[string]string)

	if len(r.IDs) == 0 {
		fields["ids"] = msgMustNotEmpty
	}
	for i, id := range r.IDs {
		if !validUUID(id) {
			fields[fmt.Sprintf("ids[%d]", i)] = fmt.Sprintf("invalid UUID: %q", id)
		}
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// CreateMarketplaceRequest represents the JSON body for creating a marketplace.
type CreateMarketplaceRequest struct {
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Domain string `json:"domain"`
	Status string `json:"status,omitempty"`
}

// Validate checks that required fields are present and the status is known.
func (r *CreateMarketplaceRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(r.Slug) == "" {
		fields["slug"] = msgRequired
	}
	if strings.TrimSpace(r.Domain) == "" {
		fields["domain"] = msgRequired
	}
	if r.Status != "" && !domain.MarketplaceStatus(r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// UpdateMarketplaceRequest represents the JSON body for updating a marketplace.
// All fields are optional; nil means "do not change this field".
type UpdateMarketplaceRequest struct {
	Name   *string `json:"name,omitempty"`
	Slug   *string `json:"slug,omitempty"`
	Domain *string `json:"domain,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Validate checks that any provided fields have valid values.
func (r *UpdateMarketplaceRequest) Validate() error {
	fields := make(map[string]string)

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		fields["name"] = msgMustNotEmpty
	}
	if r.Slug != nil && strings.TrimSpace(*r.Slug) == "" {
		fields["slug"] = msgMustNotEmpty
	}
	if r.Domain != nil && strings.TrimSpace(*r.Domain) == "" {
		fields["domain"] = msgMustNotEmpty
	}
	if r.Status != nil && !domain.MarketplaceStatus(*r.Status).IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", *r.Status)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a product.
type ProductStatus string

const (
	ProductDraft    ProductStatus = "draft"
	ProductActive   ProductStatus = "active"
	ProductArchived ProductStatus = "archived"
)

// IsValid returns true if the status is one of the defined constants.
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductDraft, ProductActive, ProductArchived:
		return true
	default:
		return false
	}
}

// Product is a catalog item. Its links point to listings of the same product
// on external marketplaces.
type Product struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Name       string
	Slug       string
	Price      decimal.Decimal
	Status     ProductStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks business rules for the Product entity.
func (p *Product) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(p.Slug) == "" {
		fields["slug"] = msgRequired
	}
	if p.CategoryID == uuid.Nil {
		fields["category_id"] = msgRequired
	}
	if p.Price.IsNegative() {
		fields["price"] = fmt.Sprintf("must not be negative, got %s", p.Price)
	}
	if !p.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", p.Status)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

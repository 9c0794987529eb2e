package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LinkStatus represents the visibility state of a link.
type LinkStatus string

const (
	LinkActive LinkStatus = "active"
	LinkHidden LinkStatus = "hidden"
)

// IsValid returns true if the status is one of the defined constants.
func (s LinkStatus) IsValid() bool {
	switch s {
	case LinkActive, LinkHidden:
		return true
	default:
		return false
	}
}

// Link is a product listing on a specific marketplace, with its own observed
// price and a position used for ordering within the product page.
type Link struct {
	ID            uuid.UUID
	ProductID     uuid.UUID
	MarketplaceID uuid.UUID
	URL           string
	Price         decimal.Decimal
	Position      int
	Status        LinkStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks business rules for the Link entity.
func (l *Link) Validate() error {
	fields := make(map[string]string)

	if l.ProductID == uuid.Nil {
		fields["product_id"] = msgRequired
	}
	if l.MarketplaceID == uuid.Nil {
		fields["marketplace_id"] = msgRequired
	}
	if strings.TrimSpace(l.URL) == "" {
		fields["url"] = msgRequired
	} else if u, err := url.Parse(l.URL); err != nil || u.Scheme == "" || u.Host == "" {
		fields["url"] = fmt.Sprintf("must be an absolute URL, got %q", l.URL)
	}
	if l.Price.IsNegative() {
		fields["price"] = fmt.Sprintf("must not be negative, got %s", l.Price)
	}
	if l.Position < 0 {
		fields["position"] = "must not be negative"
	}
	if !l.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", l.Status)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

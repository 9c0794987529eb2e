package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MarketplaceStatus represents the lifecycle state of a marketplace.
type MarketplaceStatus string

const (
	MarketplaceActive   MarketplaceStatus = "active"
	MarketplaceDisabled MarketplaceStatus = "disabled"
)

// IsValid returns true if the status is one of the defined constants.
func (s MarketplaceStatus) IsValid() bool {
	switch s {
	case MarketplaceActive, MarketplaceDisabled:
		return true
	default:
		return false
	}
}

// Marketplace is an external storefront that product links point into.
type Marketplace struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Domain    string
	Status    MarketplaceStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business rules for the Marketplace entity.
func (m *Marketplace) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(m.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(m.Slug) == "" {
		fields["slug"] = msgRequired
	}
	if strings.TrimSpace(m.Domain) == "" {
		fields["domain"] = msgRequired
	}
	if !m.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", m.Status)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

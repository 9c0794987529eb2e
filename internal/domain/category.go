package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category groups products into a tree. ParentID is nil for root categories.
type Category struct {
	ID        uuid.UUID
	ParentID  *uuid.UUID
	Name      string
	Slug      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business rules for the Category entity.
func (c *Category) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(c.Name) == "" {
		fields["name"] = msgRequired
	}
	if strings.TrimSpace(c.Slug) == "" {
		fields["slug"] = msgRequired
	}
	if c.Position < 0 {
		fields["position"] = "must not be negative"
	}
	if c.ParentID != nil && *c.ParentID == c.ID {
		fields["parent_id"] = "must not reference the category itself"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

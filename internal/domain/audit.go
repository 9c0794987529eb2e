package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is a structured fact describing a change: what happened, to
// which entity, who did it, and when. Old/new snapshots are opaque to the
// pipeline; only the entity services that wrote them interpret their content.
type AuditRecord struct {
	ID         uuid.UUID
	Action     string // dot-namespaced verb, e.g. "link.update_price"
	EntityType string
	EntityID   string
	OldValues  map[string]any
	NewValues  map[string]any
	ActorID    *uuid.UUID // nil means system-initiated
	Context    map[string]any
	CreatedAt  time.Time // assigned when the record is built, not when it is stored
}

// Validate checks structural rules for the AuditRecord.
func (r *AuditRecord) Validate() error {
	fields := make(map[string]string)

	if r.Action == "" {
		fields["action"] = msgRequired
	}
	if r.EntityType == "" {
		fields["entity_type"] = msgRequired
	}
	if r.EntityID == "" {
		fields["entity_id"] = msgRequired
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

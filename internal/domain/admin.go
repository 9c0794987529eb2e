package domain

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdminRole distinguishes regular admins from super-admins. Super-admins can
// manage other admin accounts; the last remaining super-admin cannot be
// archived.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "super_admin"
)

// IsValid returns true if the role is one of the defined constants.
func (r AdminRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// AdminStatus represents the lifecycle state of an admin account.
type AdminStatus string

const (
	AdminActive   AdminStatus = "active"
	AdminArchived AdminStatus = "archived"
)

// IsValid returns true if the status is one of the defined constants.
func (s AdminStatus) IsValid() bool {
	switch s {
	case AdminActive, AdminArchived:
		return true
	default:
		return false
	}
}

// Admin is a backend operator account.
type Admin struct {
	ID        uuid.UUID
	Email     string
	Name      string
	Role      AdminRole
	Status    AdminStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks business rules for the Admin entity.
// Returns a *ValidationError (wrapping ErrValidation) with per-field details,
// or nil if all rules pass.
func (a *Admin) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(a.Email) == "" {
		fields["email"] = msgRequired
	} else if _, err := mail.ParseAddress(a.Email); err != nil {
		fields["email"] = fmt.Sprintf("invalid address: %q", a.Email)
	}
	if strings.TrimSpace(a.Name) == "" {
		fields["name"] = msgRequired
	}
	if !a.Role.IsValid() {
		fields["role"] = fmt.Sprintf("invalid: %q", a.Role)
	}
	if !a.Status.IsValid() {
		fields["status"] = fmt.Sprintf("invalid: %q", a.Status)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

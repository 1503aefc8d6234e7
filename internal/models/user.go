package models

import (
	"time"

	"github.com/google/uuid"
)

// Role names. Scope fields on User vary by role: a store_manager has a
// single organization and optionally a single warehouse; an auditor has a
// set of warehouses (or falls back to its organization set); lead_auditor
// scope is organization-wide; admin is global.
const (
	RoleAdmin        = "admin"
	RoleStoreManager = "store_manager"
	RoleLeadAuditor  = "lead_auditor"
	RoleAuditor      = "auditor"
)

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleStoreManager, RoleLeadAuditor, RoleAuditor:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	// Legacy singular scope fields, kept for records created before the
	// plural columns existed. Consulted only when the plural set is empty.
	OrganizationID *uuid.UUID `json:"organization_id,omitempty" db:"organization_id"`
	WarehouseID    *uuid.UUID `json:"warehouse_id,omitempty" db:"warehouse_id"`

	OrganizationIDs []uuid.UUID `json:"organization_ids" db:"organization_ids"`
	WarehouseIDs    []uuid.UUID `json:"warehouse_ids" db:"warehouse_ids"`

	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

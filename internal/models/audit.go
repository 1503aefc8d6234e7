package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit is one physical-count event for a (product, warehouse) pair.
// Rows are append-only: once written they are never mutated or deleted,
// so the trail is a full reconciliation history independent of the
// current Stock value.
type Audit struct {
	ID               uuid.UUID `json:"id" db:"id"`
	ProductID        uuid.UUID `json:"product_id" db:"product_id"`
	WarehouseID      uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	OrganizationID   uuid.UUID `json:"organization_id" db:"organization_id"`
	AuditorID        uuid.UUID `json:"auditor_id" db:"auditor_id"`
	SystemQuantity   int       `json:"system_quantity" db:"system_quantity"`
	PhysicalQuantity int       `json:"physical_quantity" db:"physical_quantity"`
	Discrepancy      int       `json:"discrepancy" db:"discrepancy"` // physical - system at write time
	Notes            *string   `json:"notes" db:"notes"`
	Status           string    `json:"status" db:"status"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// AuditFilter narrows audit trail queries.
type AuditFilter struct {
	ProductID   *uuid.UUID `json:"product_id,omitempty"`
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"`
	Limit       int        `json:"limit,omitempty"`
	Offset      int        `json:"offset,omitempty"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Stock is the system-of-record quantity for one (product, warehouse) pair.
// At most one row exists per pair; rows are created lazily with quantity 0
// on the first inventory write. Quantity changes only through explicit
// manager/admin action, never through the audit path.
type Stock struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	ProductID     uuid.UUID  `json:"product_id" db:"product_id"`
	WarehouseID   uuid.UUID  `json:"warehouse_id" db:"warehouse_id"`
	Quantity      int        `json:"quantity" db:"quantity"`
	BookStock     int        `json:"book_stock" db:"book_stock"`
	MinStockLevel int        `json:"min_stock_level" db:"min_stock_level"`
	LastAuditDate *time.Time `json:"last_audit_date" db:"last_audit_date"`
	LastUpdated   time.Time  `json:"last_updated" db:"last_updated"`
}

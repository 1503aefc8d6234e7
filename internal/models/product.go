package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductSearchFilter holds search and filter criteria for product queries
type ProductSearchFilter struct {
	Query       string     `json:"query,omitempty"`        // Full-text search across name, sku, category
	WarehouseID *uuid.UUID `json:"warehouse_id,omitempty"` // Warehouse filter
	Category    *string    `json:"category,omitempty"`     // Exact category match
	Status      *string    `json:"status,omitempty"`       // Status filter
	SortBy      string     `json:"sort_by,omitempty"`      // Sort field: name, sku, created_at
	SortOrder   string     `json:"sort_order,omitempty"`   // Sort order: asc, desc
	Limit       int        `json:"limit,omitempty"`        // Page size (default: 50)
	Offset      int        `json:"offset,omitempty"`       // Page offset
}

type Product struct {
	ID             uuid.UUID `json:"id" db:"id"`
	OrganizationID uuid.UUID `json:"organization_id" db:"organization_id"`
	WarehouseID    uuid.UUID `json:"warehouse_id" db:"warehouse_id"`
	Name           string    `json:"name" db:"name"`
	SKU            string    `json:"sku" db:"sku"` // Unique per warehouse
	Description    *string   `json:"description" db:"description"`
	Category       *string   `json:"category" db:"category"`
	Unit           *string   `json:"unit" db:"unit"`
	Status         string    `json:"status" db:"status"`
	BookStock      int       `json:"book_stock" db:"book_stock"`
	BookStockValue float64   `json:"book_stock_value" db:"book_stock_value"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

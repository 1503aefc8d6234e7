package models

import "github.com/google/uuid"

// ScopeSelector is the effective query restriction computed by the access
// scoping engine for a principal. Repositories translate it into WHERE
// clauses; they never widen it.
type ScopeSelector struct {
	// Unrestricted bypasses scope filtering entirely (admin).
	Unrestricted bool
	// Empty forces an empty result set (non-admin with no resolvable scope).
	Empty bool
	// OrganizationIDs restricts rows to these organizations when set.
	OrganizationIDs []uuid.UUID
	// WarehouseIDs further restricts warehouse-keyed rows when set.
	WarehouseIDs []uuid.UUID
}

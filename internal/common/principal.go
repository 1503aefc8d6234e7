package common

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type contextKey string

const (
	// PrincipalKey carries the resolved Principal on the request context.
	PrincipalKey contextKey = "principal"
)

// Principal is the resolved identity, role and scope of an authenticated
// request. Scope sets are normalized once here: the plural columns win,
// and a legacy singular column is merged in only when the plural set is
// empty, so scoping logic elsewhere never special-cases legacy shape.
type Principal struct {
	UserID          uuid.UUID
	Role            string
	OrganizationIDs []uuid.UUID
	WarehouseIDs    []uuid.UUID
}

// NewPrincipal builds a normalized Principal from a user record.
func NewPrincipal(u *models.User) Principal {
	p := Principal{
		UserID: u.ID,
		Role:   u.Role,
	}

	p.OrganizationIDs = append(p.OrganizationIDs, u.OrganizationIDs...)
	if len(p.OrganizationIDs) == 0 && u.OrganizationID != nil {
		p.OrganizationIDs = append(p.OrganizationIDs, *u.OrganizationID)
	}

	p.WarehouseIDs = append(p.WarehouseIDs, u.WarehouseIDs...)
	if len(p.WarehouseIDs) == 0 && u.WarehouseID != nil {
		p.WarehouseIDs = append(p.WarehouseIDs, *u.WarehouseID)
	}

	return p
}

// HasOrganization reports whether id is in the principal's organization set.
func (p Principal) HasOrganization(id uuid.UUID) bool {
	for _, orgID := range p.OrganizationIDs {
		if orgID == id {
			return true
		}
	}
	return false
}

// HasWarehouse reports whether id is in the principal's warehouse set.
func (p Principal) HasWarehouse(id uuid.UUID) bool {
	for _, whID := range p.WarehouseIDs {
		if whID == id {
			return true
		}
	}
	return false
}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipalFromContext extracts the principal from the request context.
func GetPrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(Principal)
	return p, ok
}

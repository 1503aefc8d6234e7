package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

// Resource names a scoping-relevant entity class.
type Resource string

const (
	ResourceOrganization Resource = "organization"
	ResourceWarehouse    Resource = "warehouse"
	ResourceProduct      Resource = "product"
	ResourceStock        Resource = "stock"
	ResourceAudit        Resource = "audit"
	ResourceUser         Resource = "user"
)

// RequestedFilter carries caller-supplied narrowing from query parameters.
type RequestedFilter struct {
	OrganizationID *uuid.UUID
	WarehouseID    *uuid.UUID
}

// ScopeService is the access scoping engine: a deterministic, pure
// function of principal and role. ResolveFilter computes the effective
// query restriction for list/read operations; AuthorizeWrite gates
// targeted writes against a concrete (organization, warehouse) pair.
//
// Invariant: the returned selector is always a subset of the principal's
// declared scope. A requested filter can narrow it, never widen it.
type ScopeService interface {
	ResolveFilter(p common.Principal, resource Resource, requested RequestedFilter) (models.ScopeSelector, error)
	AuthorizeWrite(p common.Principal, organizationID, warehouseID uuid.UUID) error
}

type scopeService struct{}

func NewScopeService() ScopeService {
	return &scopeService{}
}

func (s *scopeService) ResolveFilter(p common.Principal, resource Resource, requested RequestedFilter) (models.ScopeSelector, error) {
	switch p.Role {
	case models.RoleAdmin:
		return resolveAdmin(requested), nil
	case models.RoleStoreManager:
		return resolveStoreManager(p, resource, requested)
	case models.RoleLeadAuditor:
		return resolveLeadAuditor(p, requested)
	case models.RoleAuditor:
		return resolveAuditor(p, requested)
	}
	return models.ScopeSelector{}, fmt.Errorf("%w: unknown role %q", common.ErrForbidden, p.Role)
}

// resolveAdmin: unrestricted, explicit filters pass through unchanged.
func resolveAdmin(requested RequestedFilter) models.ScopeSelector {
	sel := models.ScopeSelector{Unrestricted: true}
	if requested.OrganizationID != nil {
		sel.Unrestricted = false
		sel.OrganizationIDs = []uuid.UUID{*requested.OrganizationID}
	}
	if requested.WarehouseID != nil {
		sel.Unrestricted = false
		sel.WarehouseIDs = []uuid.UUID{*requested.WarehouseID}
	}
	return sel
}

// resolveStoreManager restricts to the manager's single organization, and
// to its fixed warehouse for warehouse-keyed resources when it has one.
// A manager with no fixed warehouse sees the whole organization.
func resolveStoreManager(p common.Principal, resource Resource, requested RequestedFilter) (models.ScopeSelector, error) {
	if len(p.OrganizationIDs) == 0 {
		return models.ScopeSelector{Empty: true}, nil
	}
	if requested.OrganizationID != nil && !p.HasOrganization(*requested.OrganizationID) {
		return models.ScopeSelector{}, fmt.Errorf("%w: organization outside manager scope", common.ErrForbidden)
	}

	sel := models.ScopeSelector{OrganizationIDs: p.OrganizationIDs}

	// Organizations and users are organization-keyed, not warehouse-keyed.
	if resource == ResourceOrganization || resource == ResourceUser {
		return sel, nil
	}

	if len(p.WarehouseIDs) > 0 {
		if requested.WarehouseID != nil {
			if !p.HasWarehouse(*requested.WarehouseID) {
				return models.ScopeSelector{}, fmt.Errorf("%w: warehouse outside manager scope", common.ErrForbidden)
			}
			sel.WarehouseIDs = []uuid.UUID{*requested.WarehouseID}
		} else {
			sel.WarehouseIDs = p.WarehouseIDs
		}
		return sel, nil
	}

	// Org-wide manager: a requested warehouse narrows the query, and the
	// organization restriction stays on to keep it inside the tenant.
	if requested.WarehouseID != nil {
		sel.WarehouseIDs = []uuid.UUID{*requested.WarehouseID}
	}
	return sel, nil
}

// resolveLeadAuditor restricts to all warehouses within the principal's
// organization set. Requests naming another organization fail outright.
func resolveLeadAuditor(p common.Principal, requested RequestedFilter) (models.ScopeSelector, error) {
	if len(p.OrganizationIDs) == 0 {
		return models.ScopeSelector{Empty: true}, nil
	}
	if requested.OrganizationID != nil && !p.HasOrganization(*requested.OrganizationID) {
		return models.ScopeSelector{}, fmt.Errorf("%w: organization outside auditor scope", common.ErrForbidden)
	}

	sel := models.ScopeSelector{OrganizationIDs: p.OrganizationIDs}
	if requested.OrganizationID != nil {
		sel.OrganizationIDs = []uuid.UUID{*requested.OrganizationID}
	}
	if requested.WarehouseID != nil {
		sel.WarehouseIDs = []uuid.UUID{*requested.WarehouseID}
	}
	return sel, nil
}

// resolveAuditor restricts to the principal's warehouse set when it has
// one, else falls back to its organization set.
func resolveAuditor(p common.Principal, requested RequestedFilter) (models.ScopeSelector, error) {
	if len(p.WarehouseIDs) > 0 {
		if requested.WarehouseID != nil && !p.HasWarehouse(*requested.WarehouseID) {
			return models.ScopeSelector{}, fmt.Errorf("%w: warehouse outside auditor scope", common.ErrForbidden)
		}
		if requested.OrganizationID != nil && len(p.OrganizationIDs) > 0 && !p.HasOrganization(*requested.OrganizationID) {
			return models.ScopeSelector{}, fmt.Errorf("%w: organization outside auditor scope", common.ErrForbidden)
		}

		sel := models.ScopeSelector{WarehouseIDs: p.WarehouseIDs}
		if requested.WarehouseID != nil {
			sel.WarehouseIDs = []uuid.UUID{*requested.WarehouseID}
		}
		if requested.OrganizationID != nil {
			sel.OrganizationIDs = []uuid.UUID{*requested.OrganizationID}
		}
		return sel, nil
	}

	if len(p.OrganizationIDs) > 0 {
		return resolveLeadAuditor(p, requested)
	}

	// No resolvable scope: empty result for lists, never an error.
	return models.ScopeSelector{Empty: true}, nil
}

func (s *scopeService) AuthorizeWrite(p common.Principal, organizationID, warehouseID uuid.UUID) error {
	switch p.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleStoreManager:
		if !p.HasOrganization(organizationID) {
			return fmt.Errorf("%w: organization outside manager scope", common.ErrForbidden)
		}
		if len(p.WarehouseIDs) > 0 && !p.HasWarehouse(warehouseID) {
			return fmt.Errorf("%w: warehouse outside manager scope", common.ErrForbidden)
		}
		return nil
	case models.RoleLeadAuditor:
		if !p.HasOrganization(organizationID) {
			return fmt.Errorf("%w: organization outside auditor scope", common.ErrForbidden)
		}
		return nil
	case models.RoleAuditor:
		if len(p.WarehouseIDs) > 0 {
			if !p.HasWarehouse(warehouseID) {
				return fmt.Errorf("%w: warehouse outside auditor scope", common.ErrForbidden)
			}
			return nil
		}
		if len(p.OrganizationIDs) > 0 {
			if !p.HasOrganization(organizationID) {
				return fmt.Errorf("%w: organization outside auditor scope", common.ErrForbidden)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no resolvable scope", common.ErrForbidden)
}

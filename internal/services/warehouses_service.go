package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// CreateWarehouseRequest is the warehouse creation payload.
type CreateWarehouseRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	Location       *string   `json:"location,omitempty"`
	Address        *string   `json:"address,omitempty"`
}

// WarehouseBulkImport carries rows for a partial-failure-tolerant import.
type WarehouseBulkImport struct {
	Warehouses []CreateWarehouseRequest `json:"warehouses"`
}

type WarehouseService interface {
	Create(ctx context.Context, p common.Principal, req *CreateWarehouseRequest) (*models.Warehouse, error)
	GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Warehouse, error)
	Update(ctx context.Context, p common.Principal, warehouse *models.Warehouse) error
	Delete(ctx context.Context, p common.Principal, id uuid.UUID) error
	List(ctx context.Context, p common.Principal, requested RequestedFilter, limit, offset int) ([]*models.Warehouse, error)
	BulkImport(ctx context.Context, p common.Principal, imp *WarehouseBulkImport) (*models.BulkOperationResult, error)
}

type warehouseService struct {
	warehouseRepo repositories.WarehouseRepository
	orgRepo       repositories.OrganizationRepository
	scopeSvc      ScopeService
}

func NewWarehouseService(warehouseRepo repositories.WarehouseRepository, orgRepo repositories.OrganizationRepository, scopeSvc ScopeService) WarehouseService {
	return &warehouseService{
		warehouseRepo: warehouseRepo,
		orgRepo:       orgRepo,
		scopeSvc:      scopeSvc,
	}
}

func (s *warehouseService) Create(ctx context.Context, p common.Principal, req *CreateWarehouseRequest) (*models.Warehouse, error) {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return nil, fmt.Errorf("%w: only admins and store managers create warehouses", common.ErrForbidden)
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return nil, err
	}

	if _, err := s.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, fmt.Errorf("organization: %w", err)
	}
	if p.Role != models.RoleAdmin && !p.HasOrganization(req.OrganizationID) {
		return nil, fmt.Errorf("%w: organization outside scope", common.ErrForbidden)
	}

	warehouse := &models.Warehouse{
		ID:             uuid.New(),
		OrganizationID: req.OrganizationID,
		Name:           strings.TrimSpace(req.Name),
		Code:           strings.ToUpper(strings.TrimSpace(req.Code)),
		Location:       req.Location,
		Address:        req.Address,
		Status:         models.OrgStatusActive,
		AuditStatus:    models.AuditStatusNotStarted,
	}
	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (s *warehouseService) Update(ctx context.Context, p common.Principal, warehouse *models.Warehouse) error {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return fmt.Errorf("%w: only admins and store managers update warehouses", common.ErrForbidden)
	}
	existing, err := s.warehouseRepo.GetByID(ctx, warehouse.ID)
	if err != nil {
		return err
	}
	if err := s.scopeSvc.AuthorizeWrite(p, existing.OrganizationID, existing.ID); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(warehouse.Name, "name"); err != nil {
		return err
	}
	return s.warehouseRepo.Update(ctx, warehouse)
}

func (s *warehouseService) Delete(ctx context.Context, p common.Principal, id uuid.UUID) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins delete warehouses", common.ErrForbidden)
	}
	if _, err := s.warehouseRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.warehouseRepo.Delete(ctx, id)
}

func (s *warehouseService) List(ctx context.Context, p common.Principal, requested RequestedFilter, limit, offset int) ([]*models.Warehouse, error) {
	selector, err := s.scopeSvc.ResolveFilter(p, ResourceWarehouse, requested)
	if err != nil {
		return nil, err
	}
	return s.warehouseRepo.List(ctx, selector, limit, offset)
}

// BulkImport loops over input rows, continuing past per-row errors. Rows
// whose code already exists are counted as skipped, not failed.
func (s *warehouseService) BulkImport(ctx context.Context, p common.Principal, imp *WarehouseBulkImport) (*models.BulkOperationResult, error) {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return nil, fmt.Errorf("%w: only admins and store managers import warehouses", common.ErrForbidden)
	}

	result := &models.BulkOperationResult{
		OperationID: fmt.Sprintf("warehouse_import_%d", time.Now().UnixNano()),
		Status:      "processing",
		TotalItems:  len(imp.Warehouses),
		StartTime:   time.Now(),
		Errors:      []models.BulkOperationError{},
	}

	for i := range imp.Warehouses {
		row := imp.Warehouses[i]
		_, err := s.Create(ctx, p, &row)
		if err == nil {
			result.ProcessedItems++
			continue
		}
		if errors.Is(err, common.ErrConflict) {
			result.SkippedItems++
			continue
		}
		result.FailedItems++
		result.Errors = append(result.Errors, models.BulkOperationError{
			ItemIndex: i,
			ItemID:    row.Code,
			Error:     err.Error(),
		})
	}

	result.Finish()
	return result, nil
}

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/caching"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// Inventory observation actions
const (
	ActionSet    = "set"
	ActionAdjust = "adjust"
)

const stockCacheTTL = 5 * time.Minute

// InventoryObservation is one inbound inventory write for a
// (product, warehouse) pair. How it applies depends on the actor's role.
type InventoryObservation struct {
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	Action      string    `json:"action"` // set | adjust
	Notes       *string   `json:"notes,omitempty"`
}

// ReconciliationResult reports what a Record call did. Audit is set only
// on the physical-count path.
type ReconciliationResult struct {
	Stock *models.Stock `json:"stock"`
	Audit *models.Audit `json:"audit,omitempty"`
}

// ReconciliationService applies inventory observations under the scoping
// rules. Managers and admins mutate the system quantity; auditors and
// lead auditors record independent physical counts against it. The split
// guarantees auditors can never silently corrupt the book quantity.
type ReconciliationService interface {
	Record(ctx context.Context, p common.Principal, obs *InventoryObservation) (*ReconciliationResult, error)
	Get(ctx context.Context, p common.Principal, productID, warehouseID uuid.UUID, includeAudits bool) (*models.Stock, []*models.Audit, error)
	List(ctx context.Context, p common.Principal, requested RequestedFilter, limit, offset int) ([]*models.Stock, error)
}

type reconciliationService struct {
	stockRepo     repositories.StockRepository
	auditRepo     repositories.AuditRepository
	productRepo   repositories.ProductRepository
	warehouseRepo repositories.WarehouseRepository
	scopeSvc      ScopeService
	cacheSvc      caching.CacheService
}

func NewReconciliationService(
	stockRepo repositories.StockRepository,
	auditRepo repositories.AuditRepository,
	productRepo repositories.ProductRepository,
	warehouseRepo repositories.WarehouseRepository,
	scopeSvc ScopeService,
	cacheSvc caching.CacheService,
) ReconciliationService {
	return &reconciliationService{
		stockRepo:     stockRepo,
		auditRepo:     auditRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		scopeSvc:      scopeSvc,
		cacheSvc:      cacheSvc,
	}
}

func (s *reconciliationService) Record(ctx context.Context, p common.Principal, obs *InventoryObservation) (*ReconciliationResult, error) {
	if obs.Action != ActionSet && obs.Action != ActionAdjust {
		return nil, fmt.Errorf("%w: action must be set or adjust", common.ErrInvalidInput)
	}
	if obs.Quantity < 0 && obs.Action == ActionSet {
		return nil, fmt.Errorf("%w: quantity cannot be negative", common.ErrInvalidInput)
	}

	product, err := s.productRepo.GetByID(ctx, obs.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product: %w", err)
	}
	warehouse, err := s.warehouseRepo.GetByID(ctx, obs.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if product.WarehouseID != warehouse.ID {
		return nil, fmt.Errorf("%w: product does not belong to warehouse", common.ErrInvalidInput)
	}

	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}

	switch p.Role {
	case models.RoleAdmin, models.RoleStoreManager:
		return s.applySystemUpdate(ctx, obs)
	case models.RoleAuditor, models.RoleLeadAuditor:
		return s.applyPhysicalCount(ctx, p, warehouse, obs)
	}
	return nil, common.ErrForbidden
}

// applySystemUpdate is the manager path: the system-of-record quantity
// changes. The upsert is atomic at the store so concurrent adjustments
// cannot lose updates.
func (s *reconciliationService) applySystemUpdate(ctx context.Context, obs *InventoryObservation) (*ReconciliationResult, error) {
	var (
		stock *models.Stock
		err   error
	)
	if obs.Action == ActionSet {
		stock, err = s.stockRepo.ApplySet(ctx, obs.ProductID, obs.WarehouseID, obs.Quantity)
	} else {
		stock, err = s.stockRepo.ApplyAdjust(ctx, obs.ProductID, obs.WarehouseID, obs.Quantity)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateStock(ctx, obs.ProductID, obs.WarehouseID)

	return &ReconciliationResult{Stock: stock}, nil
}

// applyPhysicalCount is the audit path: the quantity is read, never
// mutated. The discrepancy captures physical minus system at this
// moment, and the audit row is immutable from here on.
func (s *reconciliationService) applyPhysicalCount(ctx context.Context, p common.Principal, warehouse *models.Warehouse, obs *InventoryObservation) (*ReconciliationResult, error) {
	if warehouse.AuditStatus != models.AuditStatusInProgress {
		return nil, fmt.Errorf("%w: warehouse %s", common.ErrAuditNotOpen, warehouse.Code)
	}
	if obs.Quantity < 0 {
		return nil, fmt.Errorf("%w: physical quantity cannot be negative", common.ErrInvalidInput)
	}

	stock, err := s.stockRepo.EnsureExists(ctx, obs.ProductID, obs.WarehouseID)
	if err != nil {
		return nil, err
	}

	audit := &models.Audit{
		ID:               uuid.New(),
		ProductID:        obs.ProductID,
		WarehouseID:      obs.WarehouseID,
		OrganizationID:   warehouse.OrganizationID,
		AuditorID:        p.UserID,
		SystemQuantity:   stock.Quantity,
		PhysicalQuantity: obs.Quantity,
		Discrepancy:      obs.Quantity - stock.Quantity,
		Notes:            obs.Notes,
		Status:           "recorded",
	}
	if err := s.auditRepo.Create(ctx, audit); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.stockRepo.TouchLastAudit(ctx, obs.ProductID, obs.WarehouseID, now); err != nil {
		return nil, err
	}
	stock.LastAuditDate = &now

	s.invalidateStock(ctx, obs.ProductID, obs.WarehouseID)

	return &ReconciliationResult{Stock: stock, Audit: audit}, nil
}

func (s *reconciliationService) Get(ctx context.Context, p common.Principal, productID, warehouseID uuid.UUID, includeAudits bool) (*models.Stock, []*models.Audit, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, nil, fmt.Errorf("warehouse: %w", err)
	}
	if err := s.authorizeRead(p, warehouse); err != nil {
		return nil, nil, err
	}

	stock, err := s.cachedStock(ctx, productID, warehouseID)
	if err != nil {
		return nil, nil, err
	}

	var audits []*models.Audit
	if includeAudits {
		selector := models.ScopeSelector{WarehouseIDs: []uuid.UUID{warehouseID}}
		audits, err = s.auditRepo.List(ctx, selector, &models.AuditFilter{ProductID: &productID, WarehouseID: &warehouseID})
		if err != nil {
			return nil, nil, err
		}
	}
	return stock, audits, nil
}

func (s *reconciliationService) List(ctx context.Context, p common.Principal, requested RequestedFilter, limit, offset int) ([]*models.Stock, error) {
	selector, err := s.scopeSvc.ResolveFilter(p, ResourceStock, requested)
	if err != nil {
		return nil, err
	}
	return s.stockRepo.List(ctx, selector, limit, offset)
}

// authorizeRead checks a targeted stock read the same way a write is
// checked; reads of a specific pair are not list operations, so an
// unscoped principal gets Forbidden rather than an empty page.
func (s *reconciliationService) authorizeRead(p common.Principal, warehouse *models.Warehouse) error {
	return s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID)
}

func (s *reconciliationService) cachedStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	if cached, err := s.cacheSvc.GetStock(ctx, productID, warehouseID); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("Cache error for stock %s-%s: %v", productID.String(), warehouseID.String(), err)
	}

	stock, err := s.stockRepo.GetByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cacheSvc.SetStock(ctx, stock, stockCacheTTL); cacheErr != nil {
		log.Printf("Failed to cache stock %s-%s: %v", productID.String(), warehouseID.String(), cacheErr)
	}
	return stock, nil
}

func (s *reconciliationService) invalidateStock(ctx context.Context, productID, warehouseID uuid.UUID) {
	if err := s.cacheSvc.DeleteStock(ctx, productID, warehouseID); err != nil {
		log.Printf("Failed to invalidate cache for stock %s-%s: %v", productID.String(), warehouseID.String(), err)
	}
}

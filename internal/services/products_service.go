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

// CreateProductRequest is the product creation payload. BookStock seeds
// the initial system quantity for the product's stock row.
type CreateProductRequest struct {
	WarehouseID    uuid.UUID `json:"warehouse_id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	Description    *string   `json:"description,omitempty"`
	Category       *string   `json:"category,omitempty"`
	Unit           *string   `json:"unit,omitempty"`
	BookStock      int       `json:"book_stock"`
	BookStockValue float64   `json:"book_stock_value"`
}

// ProductBulkCreate carries rows for a partial-failure-tolerant create.
type ProductBulkCreate struct {
	Products []CreateProductRequest `json:"products"`
}

type ProductService interface {
	Create(ctx context.Context, p common.Principal, req *CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, p common.Principal, product *models.Product) error
	Delete(ctx context.Context, p common.Principal, id uuid.UUID) error
	List(ctx context.Context, p common.Principal, requested RequestedFilter, filter *models.ProductSearchFilter) ([]*models.Product, error)
	BulkCreate(ctx context.Context, p common.Principal, bulk *ProductBulkCreate) (*models.BulkOperationResult, error)
}

type productService struct {
	productRepo   repositories.ProductRepository
	warehouseRepo repositories.WarehouseRepository
	stockRepo     repositories.StockRepository
	scopeSvc      ScopeService
}

func NewProductService(productRepo repositories.ProductRepository, warehouseRepo repositories.WarehouseRepository, stockRepo repositories.StockRepository, scopeSvc ScopeService) ProductService {
	return &productService{
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		scopeSvc:      scopeSvc,
	}
}

func (s *productService) Create(ctx context.Context, p common.Principal, req *CreateProductRequest) (*models.Product, error) {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return nil, fmt.Errorf("%w: only admins and store managers create products", common.ErrForbidden)
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.SKU, "sku"); err != nil {
		return nil, err
	}
	if req.BookStock < 0 {
		return nil, fmt.Errorf("%w: book_stock cannot be negative", common.ErrInvalidInput)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}

	sku := strings.ToUpper(strings.TrimSpace(req.SKU))
	if existing, err := s.productRepo.GetBySKU(ctx, req.WarehouseID, sku); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: sku %s already exists in warehouse", common.ErrConflict, sku)
	} else if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New(),
		OrganizationID: warehouse.OrganizationID,
		WarehouseID:    warehouse.ID,
		Name:           strings.TrimSpace(req.Name),
		SKU:            sku,
		Description:    req.Description,
		Category:       req.Category,
		Unit:           req.Unit,
		Status:         models.OrgStatusActive,
		BookStock:      req.BookStock,
		BookStockValue: req.BookStockValue,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	// Seed the stock row so the first reconciliation pass has a system
	// quantity to compare against.
	if _, err := s.stockRepo.ApplySet(ctx, product.ID, product.WarehouseID, req.BookStock); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.scopeSvc.AuthorizeWrite(p, product.OrganizationID, product.WarehouseID); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, p common.Principal, product *models.Product) error {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return fmt.Errorf("%w: only admins and store managers update products", common.ErrForbidden)
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if err := s.scopeSvc.AuthorizeWrite(p, existing.OrganizationID, existing.WarehouseID); err != nil {
		return err
	}
	if err := common.ValidateRequiredString(product.Name, "name"); err != nil {
		return err
	}
	return s.productRepo.Update(ctx, product)
}

func (s *productService) Delete(ctx context.Context, p common.Principal, id uuid.UUID) error {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return fmt.Errorf("%w: only admins and store managers delete products", common.ErrForbidden)
	}
	existing, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.scopeSvc.AuthorizeWrite(p, existing.OrganizationID, existing.WarehouseID); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) List(ctx context.Context, p common.Principal, requested RequestedFilter, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	selector, err := s.scopeSvc.ResolveFilter(p, ResourceProduct, requested)
	if err != nil {
		return nil, err
	}
	return s.productRepo.List(ctx, selector, filter)
}

// BulkCreate loops over input rows, continuing past per-row errors. Rows
// whose SKU already exists in the target warehouse count as skipped.
func (s *productService) BulkCreate(ctx context.Context, p common.Principal, bulk *ProductBulkCreate) (*models.BulkOperationResult, error) {
	if p.Role != models.RoleAdmin && p.Role != models.RoleStoreManager {
		return nil, fmt.Errorf("%w: only admins and store managers import products", common.ErrForbidden)
	}

	result := &models.BulkOperationResult{
		OperationID: fmt.Sprintf("product_create_%d", time.Now().UnixNano()),
		Status:      "processing",
		TotalItems:  len(bulk.Products),
		StartTime:   time.Now(),
		Errors:      []models.BulkOperationError{},
	}

	for i := range bulk.Products {
		row := bulk.Products[i]
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
			ItemID:    row.SKU,
			Error:     err.Error(),
		})
	}

	result.Finish()
	return result, nil
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) EnsureExists(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ApplySet(ctx context.Context, productID, warehouseID uuid.UUID, quantity int) (*models.Stock, error) {
	args := m.Called(ctx, productID, warehouseID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ApplyAdjust(ctx context.Context, productID, warehouseID uuid.UUID, delta int) (*models.Stock, error) {
	args := m.Called(ctx, productID, warehouseID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockStockRepository) TouchLastAudit(ctx context.Context, productID, warehouseID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, productID, warehouseID, at)
	return args.Error(0)
}

func (m *MockStockRepository) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Stock, error) {
	args := m.Called(ctx, selector, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stock), args.Error(1)
}

func (m *MockStockRepository) ListBelowMinLevel(ctx context.Context, fallbackThreshold int) ([]*models.Stock, error) {
	args := m.Called(ctx, fallbackThreshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Stock), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Create(ctx context.Context, audit *models.Audit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) List(ctx context.Context, selector models.ScopeSelector, filter *models.AuditFilter) ([]*models.Audit, error) {
	args := m.Called(ctx, selector, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Audit), args.Error(1)
}

func (m *MockAuditRepository) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*models.Audit, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Audit), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*models.Product, error) {
	args := m.Called(ctx, warehouseID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, selector models.ScopeSelector, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, selector, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

type MockWarehouseRepository struct {
	mock.Mock
}

func (m *MockWarehouseRepository) Create(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) GetByCode(ctx context.Context, code string) (*models.Warehouse, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) Update(ctx context.Context, warehouse *models.Warehouse) error {
	args := m.Called(ctx, warehouse)
	return args.Error(0)
}

func (m *MockWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWarehouseRepository) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Warehouse, error) {
	args := m.Called(ctx, selector, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

func (m *MockWarehouseRepository) TransitionAuditStatus(ctx context.Context, id uuid.UUID, from []string, to string, initiatedBy *uuid.UUID, initiatedAt *time.Time) (bool, error) {
	args := m.Called(ctx, id, from, to, initiatedBy, initiatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockWarehouseRepository) UpdateChecklistQuestions(ctx context.Context, id uuid.UUID, items []models.ChecklistItem) error {
	args := m.Called(ctx, id, items)
	return args.Error(0)
}

func (m *MockWarehouseRepository) ListStaleAuditSessions(ctx context.Context, olderThan time.Time) ([]*models.Warehouse, error) {
	args := m.Called(ctx, olderThan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Warehouse), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByCode(ctx context.Context, code string) (*models.Organization, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrganizationRepository) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Organization, error) {
	args := m.Called(ctx, selector, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Organization), args.Error(1)
}

type MockChecklistTemplateRepository struct {
	mock.Mock
}

func (m *MockChecklistTemplateRepository) Create(ctx context.Context, template *models.ChecklistTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockChecklistTemplateRepository) GetActive(ctx context.Context) (*models.ChecklistTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistTemplate), args.Error(1)
}

func (m *MockChecklistTemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ChecklistTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistTemplate), args.Error(1)
}

func (m *MockChecklistTemplateRepository) Update(ctx context.Context, template *models.ChecklistTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockChecklistTemplateRepository) List(ctx context.Context, limit, offset int) ([]*models.ChecklistTemplate, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChecklistTemplate), args.Error(1)
}

type MockChecklistResponseRepository struct {
	mock.Mock
}

func (m *MockChecklistResponseRepository) GetByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.ChecklistResponse, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChecklistResponse), args.Error(1)
}

func (m *MockChecklistResponseRepository) Upsert(ctx context.Context, response *models.ChecklistResponse) error {
	args := m.Called(ctx, response)
	return args.Error(0)
}

type MockQuestionBankRepository struct {
	mock.Mock
}

func (m *MockQuestionBankRepository) Create(ctx context.Context, item *models.QuestionBankItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuestionBankRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionBankItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QuestionBankItem), args.Error(1)
}

func (m *MockQuestionBankRepository) Update(ctx context.Context, item *models.QuestionBankItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockQuestionBankRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionBankRepository) List(ctx context.Context, limit, offset int) ([]*models.QuestionBankItem, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.QuestionBankItem), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetStock(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	args := m.Called(ctx, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stock), args.Error(1)
}

func (m *MockCacheService) SetStock(ctx context.Context, stock *models.Stock, ttl time.Duration) error {
	args := m.Called(ctx, stock, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStock(ctx context.Context, productID, warehouseID uuid.UUID) error {
	args := m.Called(ctx, productID, warehouseID)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, selector, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

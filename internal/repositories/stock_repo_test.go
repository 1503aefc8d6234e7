package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

const stockCols = `id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_audit_date, last_updated`

type StockRepoTestSuite struct {
	suite.Suite
	mock        pgxmock.PgxPoolIface
	repo        StockRepository
	productID   uuid.UUID
	warehouseID uuid.UUID
	context     context.Context
}

func (suite *StockRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewStockRepository(mock)
	suite.productID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.context = context.Background()
}

func (suite *StockRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestStockRepoTestSuite(t *testing.T) {
	suite.Run(t, new(StockRepoTestSuite))
}

func (suite *StockRepoTestSuite) stockRow(quantity int) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "product_id", "warehouse_id", "quantity", "book_stock", "min_stock_level", "last_audit_date", "last_updated"}).
		AddRow(uuid.New(), suite.productID, suite.warehouseID, quantity, 0, 0, (*time.Time)(nil), time.Now())
}

func (suite *StockRepoTestSuite) TestGetByProductAndWarehouse_Success() {
	suite.mock.ExpectQuery(`
			SELECT `+stockCols+`
			FROM stock
			WHERE product_id = \$1 AND warehouse_id = \$2
		`).WithArgs(suite.productID, suite.warehouseID).
		WillReturnRows(suite.stockRow(42))

	result, err := suite.repo.GetByProductAndWarehouse(suite.context, suite.productID, suite.warehouseID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 42, result.Quantity)
	assert.Equal(suite.T(), suite.productID, result.ProductID)
	assert.Equal(suite.T(), suite.warehouseID, result.WarehouseID)
}

func (suite *StockRepoTestSuite) TestGetByProductAndWarehouse_NotFound() {
	suite.mock.ExpectQuery(`
			SELECT `+stockCols+`
			FROM stock
			WHERE product_id = \$1 AND warehouse_id = \$2
		`).WithArgs(suite.productID, suite.warehouseID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByProductAndWarehouse(suite.context, suite.productID, suite.warehouseID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

func (suite *StockRepoTestSuite) TestEnsureExists_InsertsZeroRow() {
	suite.mock.ExpectQuery(`
			INSERT INTO stock \(id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated\)
			VALUES \(\$1, \$2, \$3, 0, 0, 0, NOW\(\)\)
			ON CONFLICT \(product_id, warehouse_id\) DO UPDATE SET last_updated = stock\.last_updated
			RETURNING `+stockCols+`
		`).WithArgs(pgxmock.AnyArg(), suite.productID, suite.warehouseID).
		WillReturnRows(suite.stockRow(0))

	result, err := suite.repo.EnsureExists(suite.context, suite.productID, suite.warehouseID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, result.Quantity)
}

func (suite *StockRepoTestSuite) TestApplySet_OverwritesQuantity() {
	suite.mock.ExpectQuery(`
			INSERT INTO stock \(id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated\)
			VALUES \(\$1, \$2, \$3, \$4, 0, 0, NOW\(\)\)
			ON CONFLICT \(product_id, warehouse_id\) DO UPDATE SET quantity = EXCLUDED\.quantity, last_updated = NOW\(\)
			RETURNING `+stockCols+`
		`).WithArgs(pgxmock.AnyArg(), suite.productID, suite.warehouseID, 75).
		WillReturnRows(suite.stockRow(75))

	result, err := suite.repo.ApplySet(suite.context, suite.productID, suite.warehouseID, 75)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 75, result.Quantity)
}

func (suite *StockRepoTestSuite) TestApplyAdjust_AddsDelta() {
	suite.mock.ExpectQuery(`
			INSERT INTO stock \(id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated\)
			VALUES \(\$1, \$2, \$3, GREATEST\(\$4, 0\), 0, 0, NOW\(\)\)
			ON CONFLICT \(product_id, warehouse_id\) DO UPDATE SET quantity = GREATEST\(stock\.quantity \+ EXCLUDED\.quantity, 0\), last_updated = NOW\(\)
			RETURNING `+stockCols+`
		`).WithArgs(pgxmock.AnyArg(), suite.productID, suite.warehouseID, -10).
		WillReturnRows(suite.stockRow(30))

	result, err := suite.repo.ApplyAdjust(suite.context, suite.productID, suite.warehouseID, -10)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 30, result.Quantity)
}

func (suite *StockRepoTestSuite) TestTouchLastAudit() {
	at := time.Now()
	suite.mock.ExpectExec(`
			UPDATE stock
			SET last_audit_date = \$1
			WHERE product_id = \$2 AND warehouse_id = \$3
		`).WithArgs(at, suite.productID, suite.warehouseID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.TouchLastAudit(suite.context, suite.productID, suite.warehouseID, at)
	assert.NoError(suite.T(), err)
}

func (suite *StockRepoTestSuite) TestList_EmptySelectorShortCircuits() {
	result, err := suite.repo.List(suite.context, models.ScopeSelector{Empty: true}, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), result)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StockRepoTestSuite) TestList_WarehouseRestriction() {
	selector := models.ScopeSelector{WarehouseIDs: []uuid.UUID{suite.warehouseID}}

	suite.mock.ExpectQuery(`SELECT s\.id, s\.product_id, s\.warehouse_id, s\.quantity, s\.book_stock, s\.min_stock_level, s\.last_audit_date, s\.last_updated FROM stock s WHERE 1=1 AND s\.warehouse_id = ANY\(\$1\) ORDER BY s\.last_updated DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(selector.WarehouseIDs, 50, 0).
		WillReturnRows(suite.stockRow(12))

	result, err := suite.repo.List(suite.context, selector, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
	assert.Equal(suite.T(), 12, result[0].Quantity)
}

func (suite *StockRepoTestSuite) TestList_OrgRestrictionJoinsWarehouses() {
	orgID := uuid.New()
	selector := models.ScopeSelector{OrganizationIDs: []uuid.UUID{orgID}}

	suite.mock.ExpectQuery(`SELECT s\.id, s\.product_id, s\.warehouse_id, s\.quantity, s\.book_stock, s\.min_stock_level, s\.last_audit_date, s\.last_updated FROM stock s JOIN warehouses w ON w\.id = s\.warehouse_id WHERE 1=1 AND w\.organization_id = ANY\(\$1\) ORDER BY s\.last_updated DESC LIMIT \$2 OFFSET \$3`).
		WithArgs(selector.OrganizationIDs, 50, 0).
		WillReturnRows(suite.stockRow(7))

	result, err := suite.repo.List(suite.context, selector, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

func (suite *StockRepoTestSuite) TestListBelowMinLevel_UsesFallbackThreshold() {
	rows := pgxmock.NewRows([]string{"id", "product_id", "warehouse_id", "quantity", "book_stock", "min_stock_level", "last_audit_date", "last_updated"}).
		AddRow(uuid.New(), suite.productID, suite.warehouseID, 2, 0, 0, (*time.Time)(nil), time.Now()).
		AddRow(uuid.New(), uuid.New(), suite.warehouseID, 4, 0, 10, (*time.Time)(nil), time.Now())

	suite.mock.ExpectQuery(`
			SELECT `+stockCols+`
			FROM stock
			WHERE quantity <= CASE WHEN min_stock_level > 0 THEN min_stock_level ELSE \$1 END
			ORDER BY quantity ASC
		`).WithArgs(5).
		WillReturnRows(rows)

	result, err := suite.repo.ListBelowMinLevel(suite.context, 5)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 2)
	assert.Equal(suite.T(), 2, result[0].Quantity)
}

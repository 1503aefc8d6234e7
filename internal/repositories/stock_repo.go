package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

// StockRepository maintains the single system-of-record row per
// (product, warehouse) pair. The (product_id, warehouse_id) unique index
// enforces the at-most-one invariant; ApplySet and ApplyAdjust upsert
// against it so the read-modify-write race on quantity never leaves the
// database.
type StockRepository interface {
	GetByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error)
	// EnsureExists inserts a zero-quantity row if none exists and returns
	// the current row either way.
	EnsureExists(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error)
	// ApplySet overwrites the quantity (idempotent).
	ApplySet(ctx context.Context, productID, warehouseID uuid.UUID, quantity int) (*models.Stock, error)
	// ApplyAdjust increments the quantity atomically, clamping at zero.
	ApplyAdjust(ctx context.Context, productID, warehouseID uuid.UUID, delta int) (*models.Stock, error)
	// TouchLastAudit records that a physical count happened without
	// touching the quantity.
	TouchLastAudit(ctx context.Context, productID, warehouseID uuid.UUID, at time.Time) error
	List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Stock, error)
	ListBelowMinLevel(ctx context.Context, fallbackThreshold int) ([]*models.Stock, error)
}

type stockRepo struct {
	db Database
}

func NewStockRepository(db Database) StockRepository {
	return &stockRepo{db: db}
}

const stockColumns = `id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_audit_date, last_updated`

func scanStock(row interface{ Scan(...interface{}) error }) (*models.Stock, error) {
	s := &models.Stock{}
	err := row.Scan(&s.ID, &s.ProductID, &s.WarehouseID, &s.Quantity, &s.BookStock, &s.MinStockLevel, &s.LastAuditDate, &s.LastUpdated)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *stockRepo) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE product_id = $1 AND warehouse_id = $2
	`
	s, err := scanStock(r.db.QueryRow(ctx, query, productID, warehouseID))
	if err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *stockRepo) EnsureExists(ctx context.Context, productID, warehouseID uuid.UUID) (*models.Stock, error) {
	query := `
		INSERT INTO stock (id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated)
		VALUES ($1, $2, $3, 0, 0, 0, NOW())
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET last_updated = stock.last_updated
		RETURNING ` + stockColumns + `
	`
	s, err := scanStock(r.db.QueryRow(ctx, query, uuid.New(), productID, warehouseID))
	if err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *stockRepo) ApplySet(ctx context.Context, productID, warehouseID uuid.UUID, quantity int) (*models.Stock, error) {
	query := `
		INSERT INTO stock (id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated)
		VALUES ($1, $2, $3, $4, 0, 0, NOW())
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET quantity = EXCLUDED.quantity, last_updated = NOW()
		RETURNING ` + stockColumns + `
	`
	s, err := scanStock(r.db.QueryRow(ctx, query, uuid.New(), productID, warehouseID, quantity))
	if err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *stockRepo) ApplyAdjust(ctx context.Context, productID, warehouseID uuid.UUID, delta int) (*models.Stock, error) {
	query := `
		INSERT INTO stock (id, product_id, warehouse_id, quantity, book_stock, min_stock_level, last_updated)
		VALUES ($1, $2, $3, GREATEST($4, 0), 0, 0, NOW())
		ON CONFLICT (product_id, warehouse_id) DO UPDATE SET quantity = GREATEST(stock.quantity + EXCLUDED.quantity, 0), last_updated = NOW()
		RETURNING ` + stockColumns + `
	`
	s, err := scanStock(r.db.QueryRow(ctx, query, uuid.New(), productID, warehouseID, delta))
	if err != nil {
		return nil, translateErr(err)
	}
	return s, nil
}

func (r *stockRepo) TouchLastAudit(ctx context.Context, productID, warehouseID uuid.UUID, at time.Time) error {
	query := `
		UPDATE stock
		SET last_audit_date = $1
		WHERE product_id = $2 AND warehouse_id = $3
	`
	_, err := r.db.Exec(ctx, query, at, productID, warehouseID)
	return translateErr(err)
}

func (r *stockRepo) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Stock, error) {
	if selector.Empty {
		return []*models.Stock{}, nil
	}

	query := `SELECT s.id, s.product_id, s.warehouse_id, s.quantity, s.book_stock, s.min_stock_level, s.last_audit_date, s.last_updated FROM stock s`
	args := []interface{}{}
	n := 0
	next := func() int { n++; return n }

	needOrgJoin := !selector.Unrestricted && len(selector.OrganizationIDs) > 0
	if needOrgJoin {
		query += ` JOIN warehouses w ON w.id = s.warehouse_id`
	}
	query += ` WHERE 1=1`
	if !selector.Unrestricted {
		if len(selector.WarehouseIDs) > 0 {
			query += ` AND s.warehouse_id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.WarehouseIDs)
		}
		if needOrgJoin {
			query += ` AND w.organization_id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.OrganizationIDs)
		}
	}

	query += ` ORDER BY s.last_updated DESC`
	query += ` LIMIT $` + itoa(next()) + ` OFFSET $` + itoa(next())
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, nil
}

func (r *stockRepo) ListBelowMinLevel(ctx context.Context, fallbackThreshold int) ([]*models.Stock, error) {
	// Rows with no configured min level fall back to the global threshold.
	query := `
		SELECT ` + stockColumns + `
		FROM stock
		WHERE quantity <= CASE WHEN min_stock_level > 0 THEN min_stock_level ELSE $1 END
		ORDER BY quantity ASC
	`
	rows, err := r.db.Query(ctx, query, fallbackThreshold)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var stocks []*models.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, err
		}
		stocks = append(stocks, s)
	}
	return stocks, nil
}


package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, selector models.ScopeSelector, filter *models.ProductSearchFilter) ([]*models.Product, error)
}

type productRepo struct {
	db Database
}

func NewProductRepository(db Database) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, organization_id, warehouse_id, name, sku, description, category, unit, status, book_stock, book_stock_value, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(&p.ID, &p.OrganizationID, &p.WarehouseID, &p.Name, &p.SKU, &p.Description, &p.Category, &p.Unit, &p.Status, &p.BookStock, &p.BookStockValue, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create relies on the (warehouse_id, sku) unique index: two products may
// share a SKU only across different warehouses.
func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, organization_id, warehouse_id, name, sku, description, category, unit, status, book_stock, book_stock_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.OrganizationID, product.WarehouseID, product.Name, product.SKU, product.Description, product.Category, product.Unit, product.Status, product.BookStock, product.BookStockValue)
	return translateErr(err)
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return p, nil
}

func (r *productRepo) GetBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE warehouse_id = $1 AND sku = $2`
	p, err := scanProduct(r.db.QueryRow(ctx, query, warehouseID, sku))
	if err != nil {
		return nil, translateErr(err)
	}
	return p, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, sku = $2, description = $3, category = $4, unit = $5, status = $6, book_stock = $7, book_stock_value = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.SKU, product.Description, product.Category, product.Unit, product.Status, product.BookStock, product.BookStockValue, product.ID)
	return translateErr(err)
}

func (r *productRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateErr(err)
}

func (r *productRepo) List(ctx context.Context, selector models.ScopeSelector, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if selector.Empty {
		return []*models.Product{}, nil
	}
	if filter == nil {
		filter = &models.ProductSearchFilter{}
	}
	if filter.Limit == 0 {
		filter.Limit = 50
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := []interface{}{}
	n := 0
	next := func() int { n++; return n }

	if !selector.Unrestricted {
		if len(selector.WarehouseIDs) > 0 {
			query += ` AND warehouse_id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.WarehouseIDs)
		}
		if len(selector.OrganizationIDs) > 0 {
			query += ` AND organization_id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.OrganizationIDs)
		}
	}

	if filter.WarehouseID != nil {
		query += ` AND warehouse_id = $` + itoa(next())
		args = append(args, *filter.WarehouseID)
	}
	if filter.Category != nil {
		query += ` AND category = $` + itoa(next())
		args = append(args, *filter.Category)
	}
	if filter.Status != nil {
		query += ` AND status = $` + itoa(next())
		args = append(args, *filter.Status)
	}
	if filter.Query != "" {
		idx := itoa(next())
		query += ` AND (name ILIKE $` + idx + ` OR sku ILIKE $` + idx + `)`
		args = append(args, "%"+filter.Query+"%")
	}

	sortField := "created_at"
	switch filter.SortBy {
	case "name":
		sortField = "name"
	case "sku":
		sortField = "sku"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	query += ` ORDER BY ` + sortField + ` ` + sortOrder

	query += ` LIMIT $` + itoa(next()) + ` OFFSET $` + itoa(next())
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

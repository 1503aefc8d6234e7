package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

// AuditRepository is append-only: there is no update or delete. The trail
// is the permanent reconciliation history.
type AuditRepository interface {
	Create(ctx context.Context, audit *models.Audit) error
	List(ctx context.Context, selector models.ScopeSelector, filter *models.AuditFilter) ([]*models.Audit, error)
	ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*models.Audit, error)
}

type auditRepo struct {
	db Database
}

func NewAuditRepository(db Database) AuditRepository {
	return &auditRepo{db: db}
}

const auditColumns = `id, product_id, warehouse_id, organization_id, auditor_id, system_quantity, physical_quantity, discrepancy, notes, status, created_at`

func scanAudit(row interface{ Scan(...interface{}) error }) (*models.Audit, error) {
	a := &models.Audit{}
	err := row.Scan(&a.ID, &a.ProductID, &a.WarehouseID, &a.OrganizationID, &a.AuditorID, &a.SystemQuantity, &a.PhysicalQuantity, &a.Discrepancy, &a.Notes, &a.Status, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *auditRepo) Create(ctx context.Context, audit *models.Audit) error {
	query := `
		INSERT INTO audits (id, product_id, warehouse_id, organization_id, auditor_id, system_quantity, physical_quantity, discrepancy, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := r.db.Exec(ctx, query, audit.ID, audit.ProductID, audit.WarehouseID, audit.OrganizationID, audit.AuditorID, audit.SystemQuantity, audit.PhysicalQuantity, audit.Discrepancy, audit.Notes, audit.Status)
	return translateErr(err)
}

func (r *auditRepo) List(ctx context.Context, selector models.ScopeSelector, filter *models.AuditFilter) ([]*models.Audit, error) {
	if selector.Empty {
		return []*models.Audit{}, nil
	}
	if filter == nil {
		filter = &models.AuditFilter{}
	}
	if filter.Limit == 0 {
		filter.Limit = 100
	}

	query := `SELECT ` + auditColumns + ` FROM audits WHERE 1=1`
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

	if filter.ProductID != nil {
		query += ` AND product_id = $` + itoa(next())
		args = append(args, *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query += ` AND warehouse_id = $` + itoa(next())
		args = append(args, *filter.WarehouseID)
	}

	query += ` ORDER BY created_at DESC`
	query += ` LIMIT $` + itoa(next()) + ` OFFSET $` + itoa(next())
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var audits []*models.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, nil
}

func (r *auditRepo) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]*models.Audit, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audits
		WHERE warehouse_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query, warehouseID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var audits []*models.Audit
	for rows.Next() {
		a, err := scanAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, a)
	}
	return audits, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *models.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*models.Warehouse, error)
	Update(ctx context.Context, warehouse *models.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Warehouse, error)
	// TransitionAuditStatus performs a conditional update guarded on the
	// expected prior states. Returns false when the guard missed, which
	// means a concurrent transition won or the session is in the wrong
	// state for this action.
	TransitionAuditStatus(ctx context.Context, id uuid.UUID, from []string, to string, initiatedBy *uuid.UUID, initiatedAt *time.Time) (bool, error)
	UpdateChecklistQuestions(ctx context.Context, id uuid.UUID, items []models.ChecklistItem) error
	ListStaleAuditSessions(ctx context.Context, olderThan time.Time) ([]*models.Warehouse, error)
}

type warehouseRepo struct {
	db Database
}

func NewWarehouseRepository(db Database) WarehouseRepository {
	return &warehouseRepo{db: db}
}

const warehouseColumns = `id, organization_id, name, code, location, address, status, audit_status, audit_initiated_by, audit_initiated_at, checklist_questions, created_at, updated_at`

func scanWarehouse(row interface{ Scan(...interface{}) error }) (*models.Warehouse, error) {
	w := &models.Warehouse{}
	err := row.Scan(&w.ID, &w.OrganizationID, &w.Name, &w.Code, &w.Location, &w.Address, &w.Status, &w.AuditStatus, &w.AuditInitiatedBy, &w.AuditInitiatedAt, &w.ChecklistQuestions, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *warehouseRepo) Create(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, organization_id, name, code, location, address, status, audit_status, checklist_questions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, warehouse.ID, warehouse.OrganizationID, warehouse.Name, warehouse.Code, warehouse.Location, warehouse.Address, warehouse.Status, warehouse.AuditStatus, warehouse.ChecklistQuestions)
	return translateErr(err)
}

func (r *warehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE id = $1`
	w, err := scanWarehouse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return w, nil
}

func (r *warehouseRepo) GetByCode(ctx context.Context, code string) (*models.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE code = $1`
	w, err := scanWarehouse(r.db.QueryRow(ctx, query, code))
	if err != nil {
		return nil, translateErr(err)
	}
	return w, nil
}

func (r *warehouseRepo) Update(ctx context.Context, warehouse *models.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $1, location = $2, address = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, warehouse.Name, warehouse.Location, warehouse.Address, warehouse.Status, warehouse.ID)
	return translateErr(err)
}

func (r *warehouseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM warehouses WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateErr(err)
}

func (r *warehouseRepo) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Warehouse, error) {
	if selector.Empty {
		return []*models.Warehouse{}, nil
	}

	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE 1=1`
	args := []interface{}{}
	n := 0
	next := func() int { n++; return n }

	if !selector.Unrestricted {
		if len(selector.WarehouseIDs) > 0 {
			query += ` AND id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.WarehouseIDs)
		}
		if len(selector.OrganizationIDs) > 0 {
			query += ` AND organization_id = ANY($` + itoa(next()) + `)`
			args = append(args, selector.OrganizationIDs)
		}
	}

	query += ` ORDER BY created_at DESC`
	query += ` LIMIT $` + itoa(next()) + ` OFFSET $` + itoa(next())
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}

func (r *warehouseRepo) TransitionAuditStatus(ctx context.Context, id uuid.UUID, from []string, to string, initiatedBy *uuid.UUID, initiatedAt *time.Time) (bool, error) {
	query := `
		UPDATE warehouses
		SET audit_status = $1, audit_initiated_by = $2, audit_initiated_at = $3, updated_at = NOW()
		WHERE id = $4 AND audit_status = ANY($5)
	`
	tag, err := r.db.Exec(ctx, query, to, initiatedBy, initiatedAt, id, from)
	if err != nil {
		return false, translateErr(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *warehouseRepo) UpdateChecklistQuestions(ctx context.Context, id uuid.UUID, items []models.ChecklistItem) error {
	query := `
		UPDATE warehouses
		SET checklist_questions = $1, updated_at = NOW()
		WHERE id = $2
	`
	_, err := r.db.Exec(ctx, query, items, id)
	return translateErr(err)
}

func (r *warehouseRepo) ListStaleAuditSessions(ctx context.Context, olderThan time.Time) ([]*models.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE audit_status = $1 AND audit_initiated_at < $2
		ORDER BY audit_initiated_at ASC
	`
	rows, err := r.db.Query(ctx, query, models.AuditStatusInProgress, olderThan)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var warehouses []*models.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, w)
	}
	return warehouses, nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type OrganizationRepository interface {
	Create(ctx context.Context, org *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetByCode(ctx context.Context, code string) (*models.Organization, error)
	Update(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Organization, error)
}

type organizationRepo struct {
	db Database
}

func NewOrganizationRepository(db Database) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (id, name, code, contact_info, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, org.ID, org.Name, org.Code, org.ContactInfo, org.Status)
	return translateErr(err)
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	org := &models.Organization{}
	query := `
		SELECT id, name, code, contact_info, status, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&org.ID, &org.Name, &org.Code, &org.ContactInfo, &org.Status, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return org, nil
}

func (r *organizationRepo) GetByCode(ctx context.Context, code string) (*models.Organization, error) {
	org := &models.Organization{}
	query := `
		SELECT id, name, code, contact_info, status, created_at, updated_at
		FROM organizations
		WHERE code = $1
	`
	err := r.db.QueryRow(ctx, query, code).Scan(&org.ID, &org.Name, &org.Code, &org.ContactInfo, &org.Status, &org.CreatedAt, &org.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return org, nil
}

// Update never touches code: the organization code is immutable after creation.
func (r *organizationRepo) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET name = $1, contact_info = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, org.Name, org.ContactInfo, org.Status, org.ID)
	return translateErr(err)
}

func (r *organizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM organizations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateErr(err)
}

func (r *organizationRepo) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.Organization, error) {
	if selector.Empty {
		return []*models.Organization{}, nil
	}

	query := `
		SELECT id, name, code, contact_info, status, created_at, updated_at
		FROM organizations
	`
	args := []interface{}{}
	if !selector.Unrestricted {
		query += ` WHERE id = ANY($1)`
		args = append(args, selector.OrganizationIDs)
	}
	query += ` ORDER BY created_at DESC`
	args = append(args, limit, offset)
	if selector.Unrestricted {
		query += ` LIMIT $1 OFFSET $2`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org := &models.Organization{}
		if err := rows.Scan(&org.ID, &org.Name, &org.Code, &org.ContactInfo, &org.Status, &org.CreatedAt, &org.UpdatedAt); err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	return orgs, nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.User, error)
}

type userRepo struct {
	db Database
}

func NewUserRepository(db Database) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, name, email, password_hash, role, organization_id, warehouse_id, organization_ids, warehouse_ids, status, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.OrganizationID, &u.WarehouseID, &u.OrganizationIDs, &u.WarehouseIDs, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, organization_id, warehouse_id, organization_ids, warehouse_ids, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.OrganizationID, user.WarehouseID, user.OrganizationIDs, user.WarehouseIDs, user.Status)
	return translateErr(err)
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, role = $3, organization_id = $4, warehouse_id = $5, organization_ids = $6, warehouse_ids = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, user.Name, user.Email, user.Role, user.OrganizationID, user.WarehouseID, user.OrganizationIDs, user.WarehouseIDs, user.Status, user.ID)
	return translateErr(err)
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateErr(err)
}

func (r *userRepo) List(ctx context.Context, selector models.ScopeSelector, limit, offset int) ([]*models.User, error) {
	if selector.Empty {
		return []*models.User{}, nil
	}

	query := `SELECT ` + userColumns + ` FROM users`
	args := []interface{}{}
	n := 0
	next := func() int { n++; return n }

	if !selector.Unrestricted {
		// A user is visible when either scope shape intersects the caller's
		// organization set.
		query += ` WHERE organization_id = ANY($1) OR organization_ids && $1`
		next()
		args = append(args, selector.OrganizationIDs)
	}

	query += ` ORDER BY created_at DESC`
	query += ` LIMIT $` + itoa(next()) + ` OFFSET $` + itoa(next())
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

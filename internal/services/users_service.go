package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// CreateUserRequest is the admin user-provisioning payload. Scope fields
// are interpreted per role: store managers get an organization and
// optionally one warehouse, auditors a warehouse set (or organization
// fallback), lead auditors an organization set.
type CreateUserRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	Role            string      `json:"role"`
	OrganizationIDs []uuid.UUID `json:"organization_ids,omitempty"`
	WarehouseIDs    []uuid.UUID `json:"warehouse_ids,omitempty"`
}

type UserService interface {
	Create(ctx context.Context, p common.Principal, req *CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, p common.Principal, user *models.User) error
	Delete(ctx context.Context, p common.Principal, id uuid.UUID) error
	List(ctx context.Context, p common.Principal, limit, offset int) ([]*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	scopeSvc ScopeService
}

func NewUserService(userRepo repositories.UserRepository, scopeSvc ScopeService) UserService {
	return &userService{userRepo: userRepo, scopeSvc: scopeSvc}
}

func (s *userService) Create(ctx context.Context, p common.Principal, req *CreateUserRequest) (*models.User, error) {
	if p.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins create users", common.ErrForbidden)
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Email, "email"); err != nil {
		return nil, err
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", common.ErrInvalidInput)
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrInvalidInput, req.Role)
	}
	if req.Role != models.RoleAdmin && len(req.OrganizationIDs) == 0 {
		return nil, fmt.Errorf("%w: non-admin users need at least one organization", common.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    string(hash),
		Role:            req.Role,
		OrganizationIDs: req.OrganizationIDs,
		WarehouseIDs:    req.WarehouseIDs,
		Status:          models.OrgStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != models.RoleAdmin && p.UserID != id {
		visible := false
		for _, orgID := range common.NewPrincipal(user).OrganizationIDs {
			if p.HasOrganization(orgID) {
				visible = true
				break
			}
		}
		if !visible {
			return nil, fmt.Errorf("%w: user outside scope", common.ErrForbidden)
		}
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, p common.Principal, user *models.User) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins update users", common.ErrForbidden)
	}
	if !models.ValidRole(user.Role) {
		return fmt.Errorf("%w: unknown role %q", common.ErrInvalidInput, user.Role)
	}
	existing, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}
	// Password changes go through auth, not here.
	user.PasswordHash = existing.PasswordHash
	return s.userRepo.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, p common.Principal, id uuid.UUID) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins delete users", common.ErrForbidden)
	}
	if p.UserID == id {
		return fmt.Errorf("%w: cannot delete own account", common.ErrInvalidInput)
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) List(ctx context.Context, p common.Principal, limit, offset int) ([]*models.User, error) {
	selector, err := s.scopeSvc.ResolveFilter(p, ResourceUser, RequestedFilter{})
	if err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx, selector, limit, offset)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// CreateOrganizationRequest is the organization creation payload.
type CreateOrganizationRequest struct {
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	ContactInfo *string `json:"contact_info,omitempty"`
}

type OrganizationService interface {
	Create(ctx context.Context, p common.Principal, req *CreateOrganizationRequest) (*models.Organization, error)
	GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Organization, error)
	Update(ctx context.Context, p common.Principal, org *models.Organization) error
	Delete(ctx context.Context, p common.Principal, id uuid.UUID) error
	List(ctx context.Context, p common.Principal, limit, offset int) ([]*models.Organization, error)
}

type organizationService struct {
	orgRepo  repositories.OrganizationRepository
	scopeSvc ScopeService
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, scopeSvc ScopeService) OrganizationService {
	return &organizationService{orgRepo: orgRepo, scopeSvc: scopeSvc}
}

// Create is admin-only: organizations are the root tenant unit.
func (s *organizationService) Create(ctx context.Context, p common.Principal, req *CreateOrganizationRequest) (*models.Organization, error) {
	if p.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins create organizations", common.ErrForbidden)
	}
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, err
	}
	if err := common.ValidateRequiredString(req.Code, "code"); err != nil {
		return nil, err
	}

	org := &models.Organization{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		ContactInfo: req.ContactInfo,
		Status:      models.OrgStatusActive,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, p common.Principal, id uuid.UUID) (*models.Organization, error) {
	if p.Role != models.RoleAdmin && !p.HasOrganization(id) {
		return nil, fmt.Errorf("%w: organization outside scope", common.ErrForbidden)
	}
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) Update(ctx context.Context, p common.Principal, org *models.Organization) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins update organizations", common.ErrForbidden)
	}
	if err := common.ValidateRequiredString(org.Name, "name"); err != nil {
		return err
	}
	if _, err := s.orgRepo.GetByID(ctx, org.ID); err != nil {
		return err
	}
	return s.orgRepo.Update(ctx, org)
}

func (s *organizationService) Delete(ctx context.Context, p common.Principal, id uuid.UUID) error {
	if p.Role != models.RoleAdmin {
		return fmt.Errorf("%w: only admins delete organizations", common.ErrForbidden)
	}
	if _, err := s.orgRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.orgRepo.Delete(ctx, id)
}

func (s *organizationService) List(ctx context.Context, p common.Principal, limit, offset int) ([]*models.Organization, error) {
	selector, err := s.scopeSvc.ResolveFilter(p, ResourceOrganization, RequestedFilter{})
	if err != nil {
		return nil, err
	}
	return s.orgRepo.List(ctx, selector, limit, offset)
}

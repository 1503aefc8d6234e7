package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// Audit-control actions
const (
	AuditActionInitiate = "initiate"
	AuditActionClose    = "close"
	AuditActionReset    = "reset"
)

// AuditSessionService drives the warehouse audit-session state machine:
// not_started -> in_progress -> completed, with reset back to
// not_started from any state. Transitions are conditional updates guarded
// on the expected prior states, so concurrent calls against one warehouse
// cannot overwrite each other; the loser gets Conflict.
//
// initiate is allowed from completed: a finished audit can be re-opened
// for a re-audit, and the prior cycle's audit rows remain as history.
type AuditSessionService interface {
	Transition(ctx context.Context, p common.Principal, warehouseID uuid.UUID, action string) (*models.Warehouse, error)
}

type auditSessionService struct {
	warehouseRepo repositories.WarehouseRepository
	scopeSvc      ScopeService
}

func NewAuditSessionService(warehouseRepo repositories.WarehouseRepository, scopeSvc ScopeService) AuditSessionService {
	return &auditSessionService{
		warehouseRepo: warehouseRepo,
		scopeSvc:      scopeSvc,
	}
}

func (s *auditSessionService) Transition(ctx context.Context, p common.Principal, warehouseID uuid.UUID, action string) (*models.Warehouse, error) {
	if p.Role != models.RoleAdmin && p.Role != models.RoleLeadAuditor {
		return nil, fmt.Errorf("%w: only admins and lead auditors control audit sessions", common.ErrForbidden)
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}

	var (
		from        []string
		to          string
		initiatedBy *uuid.UUID
		initiatedAt *time.Time
	)

	switch action {
	case AuditActionInitiate:
		from = []string{models.AuditStatusNotStarted, models.AuditStatusCompleted}
		to = models.AuditStatusInProgress
		now := time.Now()
		initiatedBy = &p.UserID
		initiatedAt = &now
	case AuditActionClose:
		from = []string{models.AuditStatusInProgress}
		to = models.AuditStatusCompleted
		// Close keeps the initiator metadata for the completed cycle.
		initiatedBy = warehouse.AuditInitiatedBy
		initiatedAt = warehouse.AuditInitiatedAt
	case AuditActionReset:
		from = []string{models.AuditStatusNotStarted, models.AuditStatusInProgress, models.AuditStatusCompleted}
		to = models.AuditStatusNotStarted
	default:
		return nil, fmt.Errorf("%w: unknown audit action %q", common.ErrInvalidInput, action)
	}

	ok, err := s.warehouseRepo.TransitionAuditStatus(ctx, warehouseID, from, to, initiatedBy, initiatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: audit session is %s, cannot %s", common.ErrConflict, warehouse.AuditStatus, action)
	}

	warehouse.AuditStatus = to
	warehouse.AuditInitiatedBy = initiatedBy
	warehouse.AuditInitiatedAt = initiatedAt
	return warehouse, nil
}

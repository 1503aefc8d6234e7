package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type AuditSessionServiceTestSuite struct {
	suite.Suite
	warehouseRepo *MockWarehouseRepository
	svc           AuditSessionService

	ctx         context.Context
	orgID       uuid.UUID
	warehouseID uuid.UUID
	leadAuditor common.Principal
}

func (suite *AuditSessionServiceTestSuite) SetupTest() {
	suite.warehouseRepo = &MockWarehouseRepository{}
	suite.svc = NewAuditSessionService(suite.warehouseRepo, NewScopeService())

	suite.ctx = context.Background()
	suite.orgID = uuid.New()
	suite.warehouseID = uuid.New()
	suite.leadAuditor = common.Principal{
		UserID:          uuid.New(),
		Role:            models.RoleLeadAuditor,
		OrganizationIDs: []uuid.UUID{suite.orgID},
	}
}

func (suite *AuditSessionServiceTestSuite) TearDownTest() {
	suite.warehouseRepo.AssertExpectations(suite.T())
}

func (suite *AuditSessionServiceTestSuite) warehouseInState(status string) *models.Warehouse {
	return &models.Warehouse{
		ID:             suite.warehouseID,
		OrganizationID: suite.orgID,
		Code:           "WH-MAIN",
		AuditStatus:    status,
	}
}

func (suite *AuditSessionServiceTestSuite) TestInitiateFromNotStarted() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusNotStarted), nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		[]string{models.AuditStatusNotStarted, models.AuditStatusCompleted},
		models.AuditStatusInProgress, &suite.leadAuditor.UserID, mock.AnythingOfType("*time.Time")).
		Return(true, nil)

	warehouse, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionInitiate)

	suite.NoError(err)
	suite.Equal(models.AuditStatusInProgress, warehouse.AuditStatus)
	suite.Equal(&suite.leadAuditor.UserID, warehouse.AuditInitiatedBy)
	suite.NotNil(warehouse.AuditInitiatedAt)
}

func (suite *AuditSessionServiceTestSuite) TestInitiateFromCompletedReopens() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusCompleted), nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		[]string{models.AuditStatusNotStarted, models.AuditStatusCompleted},
		models.AuditStatusInProgress, &suite.leadAuditor.UserID, mock.AnythingOfType("*time.Time")).
		Return(true, nil)

	warehouse, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionInitiate)

	suite.NoError(err)
	suite.Equal(models.AuditStatusInProgress, warehouse.AuditStatus)
}

func (suite *AuditSessionServiceTestSuite) TestCloseKeepsInitiatorMetadata() {
	initiator := uuid.New()
	startedAt := time.Now().Add(-2 * time.Hour)
	warehouse := suite.warehouseInState(models.AuditStatusInProgress)
	warehouse.AuditInitiatedBy = &initiator
	warehouse.AuditInitiatedAt = &startedAt

	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(warehouse, nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		[]string{models.AuditStatusInProgress},
		models.AuditStatusCompleted, &initiator, &startedAt).
		Return(true, nil)

	result, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionClose)

	suite.NoError(err)
	suite.Equal(models.AuditStatusCompleted, result.AuditStatus)
	suite.Equal(&initiator, result.AuditInitiatedBy)
	suite.Equal(&startedAt, result.AuditInitiatedAt)
}

func (suite *AuditSessionServiceTestSuite) TestResetClearsMetadata() {
	initiator := uuid.New()
	startedAt := time.Now()
	warehouse := suite.warehouseInState(models.AuditStatusInProgress)
	warehouse.AuditInitiatedBy = &initiator
	warehouse.AuditInitiatedAt = &startedAt

	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).Return(warehouse, nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		[]string{models.AuditStatusNotStarted, models.AuditStatusInProgress, models.AuditStatusCompleted},
		models.AuditStatusNotStarted, (*uuid.UUID)(nil), (*time.Time)(nil)).
		Return(true, nil)

	result, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionReset)

	suite.NoError(err)
	suite.Equal(models.AuditStatusNotStarted, result.AuditStatus)
	suite.Nil(result.AuditInitiatedBy)
	suite.Nil(result.AuditInitiatedAt)
}

func (suite *AuditSessionServiceTestSuite) TestCloseWhenNotInProgressConflicts() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusNotStarted), nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		[]string{models.AuditStatusInProgress},
		models.AuditStatusCompleted, (*uuid.UUID)(nil), (*time.Time)(nil)).
		Return(false, nil)

	_, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionClose)

	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *AuditSessionServiceTestSuite) TestConcurrentInitiateLoserConflicts() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusNotStarted), nil)
	suite.warehouseRepo.On("TransitionAuditStatus", suite.ctx, suite.warehouseID,
		mock.Anything, models.AuditStatusInProgress, mock.Anything, mock.Anything).
		Return(false, nil)

	_, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionInitiate)

	suite.ErrorIs(err, common.ErrConflict)
}

func (suite *AuditSessionServiceTestSuite) TestUnknownActionInvalid() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusNotStarted), nil)

	_, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, "pause")

	suite.ErrorIs(err, common.ErrInvalidInput)
}

func (suite *AuditSessionServiceTestSuite) TestAuditorCannotControlSessions() {
	auditor := common.Principal{
		UserID:       uuid.New(),
		Role:         models.RoleAuditor,
		WarehouseIDs: []uuid.UUID{suite.warehouseID},
	}

	_, err := suite.svc.Transition(suite.ctx, auditor, suite.warehouseID, AuditActionInitiate)

	suite.ErrorIs(err, common.ErrForbidden)
}

func (suite *AuditSessionServiceTestSuite) TestStoreManagerCannotControlSessions() {
	manager := common.Principal{
		UserID:          uuid.New(),
		Role:            models.RoleStoreManager,
		OrganizationIDs: []uuid.UUID{suite.orgID},
	}

	_, err := suite.svc.Transition(suite.ctx, manager, suite.warehouseID, AuditActionClose)

	suite.ErrorIs(err, common.ErrForbidden)
}

func (suite *AuditSessionServiceTestSuite) TestForeignLeadAuditorForbidden() {
	foreign := common.Principal{
		UserID:          uuid.New(),
		Role:            models.RoleLeadAuditor,
		OrganizationIDs: []uuid.UUID{uuid.New()},
	}
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(suite.warehouseInState(models.AuditStatusNotStarted), nil)

	_, err := suite.svc.Transition(suite.ctx, foreign, suite.warehouseID, AuditActionInitiate)

	suite.ErrorIs(err, common.ErrForbidden)
}

func (suite *AuditSessionServiceTestSuite) TestMissingWarehouse() {
	suite.warehouseRepo.On("GetByID", suite.ctx, suite.warehouseID).
		Return(nil, common.ErrNotFound)

	_, err := suite.svc.Transition(suite.ctx, suite.leadAuditor, suite.warehouseID, AuditActionInitiate)

	suite.ErrorIs(err, common.ErrNotFound)
}

func TestAuditSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuditSessionServiceTestSuite))
}

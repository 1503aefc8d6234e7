package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type QuestionBankRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    QuestionBankRepository
	context context.Context
}

func (suite *QuestionBankRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewQuestionBankRepository(mock)
	suite.context = context.Background()
}

func (suite *QuestionBankRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestQuestionBankRepoTestSuite(t *testing.T) {
	suite.Run(t, new(QuestionBankRepoTestSuite))
}

func (suite *QuestionBankRepoTestSuite) TestCreate_Inserted() {
	item := &models.QuestionBankItem{
		ID:           uuid.New(),
		Category:     "safety",
		Question:     "Fire exits clear?",
		ResponseType: models.ResponseTypeYesNo,
		IsActive:     true,
	}

	suite.mock.ExpectExec(`
			INSERT INTO question_bank \(id, category, question, response_type, is_active, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\), NOW\(\)\)
			ON CONFLICT \(category, question\) DO NOTHING
		`).WithArgs(item.ID, item.Category, item.Question, item.ResponseType, item.IsActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), inserted)
}

func (suite *QuestionBankRepoTestSuite) TestCreate_DuplicateSkipped() {
	item := &models.QuestionBankItem{
		ID:           uuid.New(),
		Category:     "safety",
		Question:     "Fire exits clear?",
		ResponseType: models.ResponseTypeYesNo,
		IsActive:     true,
	}

	suite.mock.ExpectExec(`
			INSERT INTO question_bank \(id, category, question, response_type, is_active, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\), NOW\(\)\)
			ON CONFLICT \(category, question\) DO NOTHING
		`).WithArgs(item.ID, item.Category, item.Question, item.ResponseType, item.IsActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	inserted, err := suite.repo.Create(suite.context, item)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), inserted)
}

func (suite *QuestionBankRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(`SELECT ` + bankColumns + ` FROM question_bank WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByID(suite.context, id)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

type ChecklistResponseRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ChecklistResponseRepository
	context context.Context
}

func (suite *ChecklistResponseRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewChecklistResponseRepository(mock)
	suite.context = context.Background()
}

func (suite *ChecklistResponseRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestChecklistResponseRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ChecklistResponseRepoTestSuite))
}

func (suite *ChecklistResponseRepoTestSuite) TestUpsert_OverwritesOnConflict() {
	completedBy := uuid.New()
	completedAt := time.Now()
	response := &models.ChecklistResponse{
		ID:          uuid.New(),
		WarehouseID: uuid.New(),
		CompletedBy: &completedBy,
		Items: []models.ChecklistAnswer{
			{Category: "safety", Question: "Fire exits clear?", Response: true, Timestamp: time.Now()},
		},
		Status:      models.ChecklistStatusCompleted,
		CompletedAt: &completedAt,
	}

	suite.mock.ExpectExec(`
			INSERT INTO checklist_responses \(id, warehouse_id, completed_by, items, status, completed_at, created_at, updated_at\)
			VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, NOW\(\), NOW\(\)\)
			ON CONFLICT \(warehouse_id\) DO UPDATE SET
				completed_by = EXCLUDED\.completed_by,
				items = EXCLUDED\.items,
				status = EXCLUDED\.status,
				completed_at = EXCLUDED\.completed_at,
				updated_at = NOW\(\)
		`).WithArgs(response.ID, response.WarehouseID, response.CompletedBy, response.Items, response.Status, response.CompletedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.context, response)
	assert.NoError(suite.T(), err)
}

func (suite *ChecklistResponseRepoTestSuite) TestGetByWarehouse_NotFound() {
	warehouseID := uuid.New()
	suite.mock.ExpectQuery(`SELECT ` + responseColumns + ` FROM checklist_responses WHERE warehouse_id = \$1`).
		WithArgs(warehouseID).
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByWarehouse(suite.context, warehouseID)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}

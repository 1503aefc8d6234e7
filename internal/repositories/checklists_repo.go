package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
)

type ChecklistTemplateRepository interface {
	Create(ctx context.Context, template *models.ChecklistTemplate) error
	GetActive(ctx context.Context) (*models.ChecklistTemplate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ChecklistTemplate, error)
	Update(ctx context.Context, template *models.ChecklistTemplate) error
	List(ctx context.Context, limit, offset int) ([]*models.ChecklistTemplate, error)
}

type checklistTemplateRepo struct {
	db Database
}

func NewChecklistTemplateRepository(db Database) ChecklistTemplateRepository {
	return &checklistTemplateRepo{db: db}
}

const templateColumns = `id, name, items, is_active, created_at, updated_at`

func scanTemplate(row interface{ Scan(...interface{}) error }) (*models.ChecklistTemplate, error) {
	t := &models.ChecklistTemplate{}
	err := row.Scan(&t.ID, &t.Name, &t.Items, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *checklistTemplateRepo) Create(ctx context.Context, template *models.ChecklistTemplate) error {
	query := `
		INSERT INTO checklist_templates (id, name, items, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, template.ID, template.Name, template.Items, template.IsActive)
	return translateErr(err)
}

func (r *checklistTemplateRepo) GetActive(ctx context.Context) (*models.ChecklistTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM checklist_templates
		WHERE is_active = true
		ORDER BY updated_at DESC
		LIMIT 1
	`
	t, err := scanTemplate(r.db.QueryRow(ctx, query))
	if err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

func (r *checklistTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ChecklistTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM checklist_templates WHERE id = $1`
	t, err := scanTemplate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return t, nil
}

func (r *checklistTemplateRepo) Update(ctx context.Context, template *models.ChecklistTemplate) error {
	query := `
		UPDATE checklist_templates
		SET name = $1, items = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, template.Name, template.Items, template.IsActive, template.ID)
	return translateErr(err)
}

func (r *checklistTemplateRepo) List(ctx context.Context, limit, offset int) ([]*models.ChecklistTemplate, error) {
	query := `
		SELECT ` + templateColumns + `
		FROM checklist_templates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var templates []*models.ChecklistTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}

type ChecklistResponseRepository interface {
	GetByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.ChecklistResponse, error)
	// Upsert implements the one-response-per-warehouse rule: on conflict
	// the items, status, completed_by and completed_at are overwritten
	// wholesale, never merged per-item.
	Upsert(ctx context.Context, response *models.ChecklistResponse) error
}

type checklistResponseRepo struct {
	db Database
}

func NewChecklistResponseRepository(db Database) ChecklistResponseRepository {
	return &checklistResponseRepo{db: db}
}

const responseColumns = `id, warehouse_id, completed_by, items, status, completed_at, created_at, updated_at`

func (r *checklistResponseRepo) GetByWarehouse(ctx context.Context, warehouseID uuid.UUID) (*models.ChecklistResponse, error) {
	resp := &models.ChecklistResponse{}
	query := `SELECT ` + responseColumns + ` FROM checklist_responses WHERE warehouse_id = $1`
	err := r.db.QueryRow(ctx, query, warehouseID).Scan(&resp.ID, &resp.WarehouseID, &resp.CompletedBy, &resp.Items, &resp.Status, &resp.CompletedAt, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		return nil, translateErr(err)
	}
	return resp, nil
}

func (r *checklistResponseRepo) Upsert(ctx context.Context, response *models.ChecklistResponse) error {
	query := `
		INSERT INTO checklist_responses (id, warehouse_id, completed_by, items, status, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (warehouse_id) DO UPDATE SET
			completed_by = EXCLUDED.completed_by,
			items = EXCLUDED.items,
			status = EXCLUDED.status,
			completed_at = EXCLUDED.completed_at,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, response.ID, response.WarehouseID, response.CompletedBy, response.Items, response.Status, response.CompletedAt)
	return translateErr(err)
}

type QuestionBankRepository interface {
	// Create skips exact (category, question) duplicates; the bool result
	// reports whether a row was actually inserted.
	Create(ctx context.Context, item *models.QuestionBankItem) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionBankItem, error)
	Update(ctx context.Context, item *models.QuestionBankItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.QuestionBankItem, error)
}

type questionBankRepo struct {
	db Database
}

func NewQuestionBankRepository(db Database) QuestionBankRepository {
	return &questionBankRepo{db: db}
}

const bankColumns = `id, category, question, response_type, is_active, created_at, updated_at`

func scanBankItem(row interface{ Scan(...interface{}) error }) (*models.QuestionBankItem, error) {
	item := &models.QuestionBankItem{}
	err := row.Scan(&item.ID, &item.Category, &item.Question, &item.ResponseType, &item.IsActive, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *questionBankRepo) Create(ctx context.Context, item *models.QuestionBankItem) (bool, error) {
	query := `
		INSERT INTO question_bank (id, category, question, response_type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (category, question) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, item.ID, item.Category, item.Question, item.ResponseType, item.IsActive)
	if err != nil {
		return false, translateErr(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *questionBankRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.QuestionBankItem, error) {
	query := `SELECT ` + bankColumns + ` FROM question_bank WHERE id = $1`
	item, err := scanBankItem(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return item, nil
}

func (r *questionBankRepo) Update(ctx context.Context, item *models.QuestionBankItem) error {
	query := `
		UPDATE question_bank
		SET category = $1, question = $2, response_type = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, item.Category, item.Question, item.ResponseType, item.IsActive, item.ID)
	return translateErr(err)
}

func (r *questionBankRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM question_bank WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return translateErr(err)
}

func (r *questionBankRepo) List(ctx context.Context, limit, offset int) ([]*models.QuestionBankItem, error) {
	query := `
		SELECT ` + bankColumns + `
		FROM question_bank
		ORDER BY category, question
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var items []*models.QuestionBankItem
	for rows.Next() {
		item, err := scanBankItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

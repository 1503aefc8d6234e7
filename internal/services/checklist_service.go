package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
)

// UpsertResponseRequest is the inbound checklist response document.
type UpsertResponseRequest struct {
	WarehouseID uuid.UUID                `json:"warehouse_id"`
	Items       []models.ChecklistAnswer `json:"items"`
	Status      string                   `json:"status"`
}

// UpdateBankItemRequest carries a partial question-bank edit. Nil fields
// keep the stored value.
type UpdateBankItemRequest struct {
	ID           uuid.UUID `json:"-"`
	Category     *string   `json:"category"`
	Question     *string   `json:"question"`
	ResponseType *string   `json:"response_type"`
	IsActive     *bool     `json:"is_active"`
}

// ChecklistService attaches the verification questionnaire to a
// warehouse's audit cycle. The effective checklist for a warehouse is its
// own question list when it has one, else the single active template;
// overrides replace the template wholesale, never merge with it.
type ChecklistService interface {
	Effective(ctx context.Context, p common.Principal, warehouseID uuid.UUID) ([]models.ChecklistItem, error)
	GetResponse(ctx context.Context, p common.Principal, warehouseID uuid.UUID) (*models.ChecklistResponse, error)
	UpsertResponse(ctx context.Context, p common.Principal, req *UpsertResponseRequest) (*models.ChecklistResponse, error)
	SetWarehouseQuestions(ctx context.Context, p common.Principal, warehouseID uuid.UUID, items []models.ChecklistItem) error

	ListBank(ctx context.Context, limit, offset int) ([]*models.QuestionBankItem, error)
	CreateBankItem(ctx context.Context, p common.Principal, item *models.QuestionBankItem) (*models.QuestionBankItem, error)
	UpdateBankItem(ctx context.Context, p common.Principal, req *UpdateBankItemRequest) (*models.QuestionBankItem, error)
	DeleteBankItem(ctx context.Context, p common.Principal, id uuid.UUID) error
	// ImportFromTemplate copies the active template's items into the bank,
	// skipping exact (category, question) duplicates. Duplicates count as
	// skipped, not failed.
	ImportFromTemplate(ctx context.Context, p common.Principal) (*models.BulkOperationResult, error)
}

type checklistService struct {
	templateRepo  repositories.ChecklistTemplateRepository
	responseRepo  repositories.ChecklistResponseRepository
	bankRepo      repositories.QuestionBankRepository
	warehouseRepo repositories.WarehouseRepository
	scopeSvc      ScopeService
}

func NewChecklistService(
	templateRepo repositories.ChecklistTemplateRepository,
	responseRepo repositories.ChecklistResponseRepository,
	bankRepo repositories.QuestionBankRepository,
	warehouseRepo repositories.WarehouseRepository,
	scopeSvc ScopeService,
) ChecklistService {
	return &checklistService{
		templateRepo:  templateRepo,
		responseRepo:  responseRepo,
		bankRepo:      bankRepo,
		warehouseRepo: warehouseRepo,
		scopeSvc:      scopeSvc,
	}
}

func (s *checklistService) Effective(ctx context.Context, p common.Principal, warehouseID uuid.UUID) ([]models.ChecklistItem, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}

	if len(warehouse.ChecklistQuestions) > 0 {
		return warehouse.ChecklistQuestions, nil
	}

	template, err := s.templateRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("active template: %w", err)
	}
	return template.Items, nil
}

func (s *checklistService) GetResponse(ctx context.Context, p common.Principal, warehouseID uuid.UUID) (*models.ChecklistResponse, error) {
	return s.responseRepo.GetByWarehouse(ctx, warehouseID)
}

func (s *checklistService) UpsertResponse(ctx context.Context, p common.Principal, req *UpsertResponseRequest) (*models.ChecklistResponse, error) {
	if err := requireChecklistWriter(p); err != nil {
		return nil, err
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: %w", err)
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ChecklistStatusPending
	}
	if status != models.ChecklistStatusPending && status != models.ChecklistStatusInProgress && status != models.ChecklistStatusCompleted {
		return nil, fmt.Errorf("%w: unknown checklist status %q", common.ErrInvalidInput, status)
	}

	var expected map[string]string
	if len(req.Items) > 0 {
		expected, err = s.expectedResponseTypes(ctx, warehouse)
		if err != nil {
			return nil, err
		}
	}

	for i := range req.Items {
		if err := validateAnswer(&req.Items[i], expected[req.Items[i].Question]); err != nil {
			return nil, err
		}
		if req.Items[i].Timestamp.IsZero() {
			req.Items[i].Timestamp = time.Now()
		}
	}

	response := &models.ChecklistResponse{
		ID:          uuid.New(),
		WarehouseID: req.WarehouseID,
		CompletedBy: &p.UserID,
		Items:       req.Items,
		Status:      status,
	}
	if status == models.ChecklistStatusCompleted {
		now := time.Now()
		response.CompletedAt = &now
	}

	if err := s.responseRepo.Upsert(ctx, response); err != nil {
		return nil, err
	}
	return response, nil
}

func (s *checklistService) SetWarehouseQuestions(ctx context.Context, p common.Principal, warehouseID uuid.UUID, items []models.ChecklistItem) error {
	if err := requireChecklistWriter(p); err != nil {
		return err
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return fmt.Errorf("warehouse: %w", err)
	}
	if err := s.scopeSvc.AuthorizeWrite(p, warehouse.OrganizationID, warehouse.ID); err != nil {
		return err
	}

	for _, item := range items {
		if err := validateItem(item); err != nil {
			return err
		}
	}
	return s.warehouseRepo.UpdateChecklistQuestions(ctx, warehouseID, items)
}

func (s *checklistService) ListBank(ctx context.Context, limit, offset int) ([]*models.QuestionBankItem, error) {
	return s.bankRepo.List(ctx, limit, offset)
}

func (s *checklistService) CreateBankItem(ctx context.Context, p common.Principal, item *models.QuestionBankItem) (*models.QuestionBankItem, error) {
	if err := requireChecklistWriter(p); err != nil {
		return nil, err
	}
	if err := validateItem(models.ChecklistItem{Category: item.Category, Question: item.Question, ResponseType: item.ResponseType}); err != nil {
		return nil, err
	}

	item.ID = uuid.New()
	inserted, err := s.bankRepo.Create(ctx, item)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, fmt.Errorf("%w: question already exists in bank", common.ErrConflict)
	}
	return item, nil
}

// UpdateBankItem merges the partial edit onto the stored row so an
// omitted field never blanks what the repo update writes back.
func (s *checklistService) UpdateBankItem(ctx context.Context, p common.Principal, req *UpdateBankItemRequest) (*models.QuestionBankItem, error) {
	if err := requireChecklistWriter(p); err != nil {
		return nil, err
	}

	item, err := s.bankRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Question != nil {
		item.Question = *req.Question
	}
	if req.ResponseType != nil {
		item.ResponseType = *req.ResponseType
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := validateItem(models.ChecklistItem{Category: item.Category, Question: item.Question, ResponseType: item.ResponseType}); err != nil {
		return nil, err
	}

	if err := s.bankRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *checklistService) DeleteBankItem(ctx context.Context, p common.Principal, id uuid.UUID) error {
	if err := requireChecklistWriter(p); err != nil {
		return err
	}
	if _, err := s.bankRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.bankRepo.Delete(ctx, id)
}

func (s *checklistService) ImportFromTemplate(ctx context.Context, p common.Principal) (*models.BulkOperationResult, error) {
	if err := requireChecklistWriter(p); err != nil {
		return nil, err
	}

	template, err := s.templateRepo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("active template: %w", err)
	}

	result := &models.BulkOperationResult{
		OperationID: fmt.Sprintf("bank_import_%d", time.Now().UnixNano()),
		Status:      "processing",
		TotalItems:  len(template.Items),
		StartTime:   time.Now(),
		Errors:      []models.BulkOperationError{},
	}

	for i, item := range template.Items {
		bankItem := &models.QuestionBankItem{
			ID:           uuid.New(),
			Category:     item.Category,
			Question:     item.Question,
			ResponseType: item.ResponseType,
			IsActive:     true,
		}
		inserted, err := s.bankRepo.Create(ctx, bankItem)
		if err != nil {
			result.FailedItems++
			result.Errors = append(result.Errors, models.BulkOperationError{
				ItemIndex: i,
				ItemID:    item.Question,
				Error:     err.Error(),
			})
			continue
		}
		if !inserted {
			result.SkippedItems++
			continue
		}
		result.ProcessedItems++
	}

	result.Finish()
	return result, nil
}

func requireChecklistWriter(p common.Principal) error {
	if p.Role != models.RoleAdmin && p.Role != models.RoleLeadAuditor {
		return fmt.Errorf("%w: only admins and lead auditors may edit checklists", common.ErrForbidden)
	}
	return nil
}

func validateItem(item models.ChecklistItem) error {
	if strings.TrimSpace(item.Question) == "" {
		return fmt.Errorf("%w: question is required", common.ErrInvalidInput)
	}
	switch item.ResponseType {
	case models.ResponseTypeYesNo, models.ResponseTypeText, models.ResponseTypeNumber, models.ResponseTypeNA:
		return nil
	}
	return fmt.Errorf("%w: unknown response type %q", common.ErrInvalidInput, item.ResponseType)
}

// expectedResponseTypes maps question text to response type for the
// warehouse's effective checklist. No active template means no typed
// constraints; answers then get the shape check only.
func (s *checklistService) expectedResponseTypes(ctx context.Context, warehouse *models.Warehouse) (map[string]string, error) {
	items := warehouse.ChecklistQuestions
	if len(items) == 0 {
		template, err := s.templateRepo.GetActive(ctx)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("active template: %w", err)
		}
		items = template.Items
	}

	types := make(map[string]string, len(items))
	for _, item := range items {
		types[item.Question] = item.ResponseType
	}
	return types, nil
}

// validateAnswer checks the response payload against the answered
// question's response type before persistence: yes_no carries
// true/false/"N/A", text a non-empty string, number a numeric value.
// Answers to questions off the effective checklist only get the shape
// check.
func validateAnswer(answer *models.ChecklistAnswer, responseType string) error {
	if strings.TrimSpace(answer.Question) == "" {
		return fmt.Errorf("%w: answer question is required", common.ErrInvalidInput)
	}
	if answer.Response == nil {
		return nil
	}

	switch responseType {
	case models.ResponseTypeYesNo:
		switch v := answer.Response.(type) {
		case bool:
			return nil
		case string:
			if v == "N/A" {
				return nil
			}
		}
		return fmt.Errorf("%w: %q expects true, false or \"N/A\"", common.ErrInvalidInput, answer.Question)
	case models.ResponseTypeNumber:
		switch answer.Response.(type) {
		case float64, int, json.Number:
			return nil
		}
		return fmt.Errorf("%w: %q expects a numeric response", common.ErrInvalidInput, answer.Question)
	case models.ResponseTypeText:
		if v, ok := answer.Response.(string); ok && strings.TrimSpace(v) != "" {
			return nil
		}
		return fmt.Errorf("%w: %q expects a non-empty text response", common.ErrInvalidInput, answer.Question)
	case models.ResponseTypeNA:
		return nil
	}

	// JSON numbers decode as float64, booleans as bool; "N/A" rides
	// along as a string.
	switch v := answer.Response.(type) {
	case bool, float64, int, json.Number:
		return nil
	case string:
		if v != "" {
			return nil
		}
		return fmt.Errorf("%w: empty response for %q", common.ErrInvalidInput, answer.Question)
	}
	return fmt.Errorf("%w: unsupported response shape for %q", common.ErrInvalidInput, answer.Question)
}

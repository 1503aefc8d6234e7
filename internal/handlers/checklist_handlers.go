package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/models"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// ChecklistHandlers handles the checklist subsystem: effective-checklist
// resolution, per-warehouse response documents, warehouse question
// overrides and the question bank.
type ChecklistHandlers struct {
	checklistService services.ChecklistService
}

func NewChecklistHandlers(checklistService services.ChecklistService) *ChecklistHandlers {
	return &ChecklistHandlers{checklistService: checklistService}
}

// GetEffectiveChecklist resolves the question list for a warehouse:
// the warehouse override when set, else the active template.
func (h *ChecklistHandlers) GetEffectiveChecklist(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.QueryParam("warehouse_id"), "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}

	items, err := h.checklistService.Effective(c.Request().Context(), p, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouse_id": warehouseID,
		"items":        items,
	})
}

// GetResponse returns the stored response document for a warehouse.
func (h *ChecklistHandlers) GetResponse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("warehouseId"), "warehouseId")
	if err != nil {
		return common.SendError(c, err)
	}

	response, err := h.checklistService.GetResponse(c.Request().Context(), p, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// UpsertResponse creates or wholesale-replaces the response document for
// a warehouse.
func (h *ChecklistHandlers) UpsertResponse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.UpsertResponseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	response, err := h.checklistService.UpsertResponse(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, response)
}

// SetWarehouseQuestionsRequest carries the override question list.
type SetWarehouseQuestionsRequest struct {
	Items []models.ChecklistItem `json:"items"`
}

// SetWarehouseQuestions replaces a warehouse's checklist override.
func (h *ChecklistHandlers) SetWarehouseQuestions(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("warehouseId"), "warehouseId")
	if err != nil {
		return common.SendError(c, err)
	}

	var req SetWarehouseQuestionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.checklistService.SetWarehouseQuestions(c.Request().Context(), p, warehouseID, req.Items); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouse_id": warehouseID,
		"items":        req.Items,
	})
}

// ListBankRequest represents query parameters for listing bank items.
type ListBankRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListBank lists question bank items.
func (h *ChecklistHandlers) ListBank(c echo.Context) error {
	if _, err := principalOrErr(c); err != nil {
		return common.SendError(c, err)
	}

	var req ListBankRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	items, err := h.checklistService.ListBank(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items":  items,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

// CreateBankItemRequest is either a plain item creation or, when Action
// is import_from_template, a bulk copy of the active template's items.
type CreateBankItemRequest struct {
	Action       string `json:"action"`
	Category     string `json:"category"`
	Question     string `json:"question"`
	ResponseType string `json:"response_type"`
}

func (h *ChecklistHandlers) CreateBankItem(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req CreateBankItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if req.Action == "import_from_template" {
		result, err := h.checklistService.ImportFromTemplate(c.Request().Context(), p)
		if err != nil {
			return common.SendError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	}

	item := &models.QuestionBankItem{
		Category:     req.Category,
		Question:     req.Question,
		ResponseType: req.ResponseType,
		IsActive:     true,
	}
	created, err := h.checklistService.CreateBankItem(c.Request().Context(), p, item)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *ChecklistHandlers) UpdateBankItem(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	itemID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.UpdateBankItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	req.ID = itemID

	item, err := h.checklistService.UpdateBankItem(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ChecklistHandlers) DeleteBankItem(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	itemID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.checklistService.DeleteBankItem(c.Request().Context(), p, itemID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Question deleted successfully",
	})
}

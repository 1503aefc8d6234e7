package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// InventoryHandlers handles stock reads and inventory observations. One
// POST endpoint covers both the manager write path and the auditor
// physical-count path; the service decides by role.
type InventoryHandlers struct {
	reconciliationService services.ReconciliationService
}

func NewInventoryHandlers(reconciliationService services.ReconciliationService) *InventoryHandlers {
	return &InventoryHandlers{reconciliationService: reconciliationService}
}

// RecordObservationRequest is the wire shape for POST /inventory. The
// action rides in a field named "type".
type RecordObservationRequest struct {
	ProductID   uuid.UUID `json:"product_id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
	Type        string    `json:"type"` // set | adjust
	Notes       *string   `json:"notes,omitempty"`
}

// RecordObservation applies one inventory observation.
func (h *InventoryHandlers) RecordObservation(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req RecordObservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	obs := services.InventoryObservation{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		Action:      req.Type,
		Notes:       req.Notes,
	}

	result, err := h.reconciliationService.Record(c.Request().Context(), p, &obs)
	if err != nil {
		return common.SendError(c, err)
	}

	status := http.StatusOK
	if result.Audit != nil {
		status = http.StatusCreated
	}
	return c.JSON(status, result)
}

// GetInventoryRequest represents query parameters for inventory reads.
// With both product_id and warehouse_id set it is a targeted read; any
// other combination lists the caller's visible stock.
type GetInventoryRequest struct {
	ProductID      string `query:"product_id"`
	WarehouseID    string `query:"warehouse_id"`
	OrganizationID string `query:"organization_id"`
	IncludeAudits  bool   `query:"include_audits"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

func (h *InventoryHandlers) GetInventory(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req GetInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	if req.ProductID != "" && req.WarehouseID != "" {
		return h.getStock(c, p, &req)
	}
	return h.listStock(c, p, &req)
}

func (h *InventoryHandlers) getStock(c echo.Context, p common.Principal, req *GetInventoryRequest) error {
	productID, err := common.ValidateUUID(req.ProductID, "product_id")
	if err != nil {
		return common.SendError(c, err)
	}
	warehouseID, err := common.ValidateUUID(req.WarehouseID, "warehouse_id")
	if err != nil {
		return common.SendError(c, err)
	}

	stock, audits, err := h.reconciliationService.Get(c.Request().Context(), p, productID, warehouseID, req.IncludeAudits)
	if err != nil {
		return common.SendError(c, err)
	}

	resp := map[string]interface{}{"stock": stock}
	if req.IncludeAudits {
		resp["audits"] = audits
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *InventoryHandlers) listStock(c echo.Context, p common.Principal, req *GetInventoryRequest) error {
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	requested, err := parseRequestedFilter(req.OrganizationID, req.WarehouseID)
	if err != nil {
		return common.SendError(c, err)
	}

	stocks, err := h.reconciliationService.List(c.Request().Context(), p, requested, req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"stock":  stocks,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

// parseRequestedFilter turns optional query-string IDs into a filter.
func parseRequestedFilter(orgIDStr, warehouseIDStr string) (services.RequestedFilter, error) {
	var requested services.RequestedFilter
	if orgIDStr != "" {
		id, err := common.ValidateUUID(orgIDStr, "organization_id")
		if err != nil {
			return requested, err
		}
		requested.OrganizationID = &id
	}
	if warehouseIDStr != "" {
		id, err := common.ValidateUUID(warehouseIDStr, "warehouse_id")
		if err != nil {
			return requested, err
		}
		requested.WarehouseID = &id
	}
	return requested, nil
}

// principalOrErr is the shared context-extraction helper.
func principalOrErr(c echo.Context) (common.Principal, error) {
	p, ok := common.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return common.Principal{UserID: uuid.Nil}, common.ErrUnauthenticated
	}
	return p, nil
}

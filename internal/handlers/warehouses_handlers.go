package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/reports"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// WarehouseHandlers handles warehouse CRUD, audit-session control, bulk
// import and discrepancy report export.
type WarehouseHandlers struct {
	warehouseService    services.WarehouseService
	auditSessionService services.AuditSessionService
	reportService       reports.ReportService
}

func NewWarehouseHandlers(warehouseService services.WarehouseService, auditSessionService services.AuditSessionService, reportService reports.ReportService) *WarehouseHandlers {
	return &WarehouseHandlers{
		warehouseService:    warehouseService,
		auditSessionService: auditSessionService,
		reportService:       reportService,
	}
}

// ListWarehousesRequest represents query parameters for listing warehouses.
type ListWarehousesRequest struct {
	OrganizationID string `query:"organization_id"`
	WarehouseID    string `query:"warehouse_id"`
	Limit          int    `query:"limit"`
	Offset         int    `query:"offset"`
}

func (h *WarehouseHandlers) ListWarehouses(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req ListWarehousesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	requested, err := parseRequestedFilter(req.OrganizationID, req.WarehouseID)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouses, err := h.warehouseService.List(c.Request().Context(), p, requested, req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"warehouses": warehouses,
		"limit":      req.Limit,
		"offset":     req.Offset,
	})
}

func (h *WarehouseHandlers) CreateWarehouse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.CreateWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	warehouse, err := h.warehouseService.Create(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, warehouse)
}

func (h *WarehouseHandlers) GetWarehouse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	warehouse, err := h.warehouseService.GetByID(c.Request().Context(), p, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

// UpdateWarehouseRequest represents the warehouse update request payload.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	Address  *string `json:"address"`
	Status   *string `json:"status"`
}

func (h *WarehouseHandlers) UpdateWarehouse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req UpdateWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	warehouse, err := h.warehouseService.GetByID(c.Request().Context(), p, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}

	if req.Name != nil {
		warehouse.Name = *req.Name
	}
	if req.Location != nil {
		warehouse.Location = req.Location
	}
	if req.Address != nil {
		warehouse.Address = req.Address
	}
	if req.Status != nil {
		warehouse.Status = *req.Status
	}

	if err := h.warehouseService.Update(c.Request().Context(), p, warehouse); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

func (h *WarehouseHandlers) DeleteWarehouse(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.warehouseService.Delete(c.Request().Context(), p, warehouseID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Warehouse deleted successfully",
	})
}

// AuditControlRequest selects the audit-session transition to apply.
type AuditControlRequest struct {
	Action string `json:"action"` // initiate | close | reset
}

// AuditControl drives the warehouse audit-session state machine.
func (h *WarehouseHandlers) AuditControl(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req AuditControlRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	warehouse, err := h.auditSessionService.Transition(c.Request().Context(), p, warehouseID, req.Action)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, warehouse)
}

// BulkImportWarehouses imports warehouse rows, tolerating partial failure.
func (h *WarehouseHandlers) BulkImportWarehouses(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var imp services.WarehouseBulkImport
	if err := c.Bind(&imp); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.warehouseService.BulkImport(c.Request().Context(), p, &imp)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// DiscrepancyReport exports the warehouse's audit trail to object storage
// and returns a time-limited download URL.
func (h *WarehouseHandlers) DiscrepancyReport(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	warehouseID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	report, err := h.reportService.ExportDiscrepancies(c.Request().Context(), p, warehouseID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

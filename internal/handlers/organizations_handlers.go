package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// OrganizationHandlers handles organization CRUD.
type OrganizationHandlers struct {
	orgService services.OrganizationService
}

func NewOrganizationHandlers(orgService services.OrganizationService) *OrganizationHandlers {
	return &OrganizationHandlers{orgService: orgService}
}

// ListOrganizationsRequest represents query parameters for listing.
type ListOrganizationsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *OrganizationHandlers) ListOrganizations(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req ListOrganizationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	orgs, err := h.orgService.List(c.Request().Context(), p, req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"organizations": orgs,
		"limit":         req.Limit,
		"offset":        req.Offset,
	})
}

func (h *OrganizationHandlers) CreateOrganization(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.CreateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	org, err := h.orgService.Create(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, org)
}

func (h *OrganizationHandlers) GetOrganization(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	orgID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	org, err := h.orgService.GetByID(c.Request().Context(), p, orgID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, org)
}

// UpdateOrganizationRequest represents the update payload. Code is
// immutable and deliberately absent.
type UpdateOrganizationRequest struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contact_info"`
	Status      *string `json:"status"`
}

func (h *OrganizationHandlers) UpdateOrganization(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	orgID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req UpdateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	org, err := h.orgService.GetByID(c.Request().Context(), p, orgID)
	if err != nil {
		return common.SendError(c, err)
	}

	if req.Name != nil {
		org.Name = *req.Name
	}
	if req.ContactInfo != nil {
		org.ContactInfo = req.ContactInfo
	}
	if req.Status != nil {
		org.Status = *req.Status
	}

	if err := h.orgService.Update(c.Request().Context(), p, org); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, org)
}

func (h *OrganizationHandlers) DeleteOrganization(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	orgID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.orgService.Delete(c.Request().Context(), p, orgID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Organization deleted successfully",
	})
}

package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// UserHandlers handles admin user management.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// ListUsersRequest represents query parameters for listing users.
type ListUsersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req ListUsersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}
	req.Limit, req.Offset = common.ValidatePaginationParams(req.Limit, req.Offset)

	users, err := h.userService.List(c.Request().Context(), p, req.Limit, req.Offset)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"users":  users,
		"limit":  req.Limit,
		"offset": req.Offset,
	})
}

func (h *UserHandlers) CreateUser(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	var req services.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.Create(c.Request().Context(), p, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	user, err := h.userService.GetByID(c.Request().Context(), p, userID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateUserRequest represents the user update payload. Passwords are
// not updatable here.
type UpdateUserRequest struct {
	Name            *string     `json:"name"`
	Email           *string     `json:"email"`
	Role            *string     `json:"role"`
	OrganizationIDs []uuid.UUID `json:"organization_ids"`
	WarehouseIDs    []uuid.UUID `json:"warehouse_ids"`
	Status          *string     `json:"status"`
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.userService.GetByID(c.Request().Context(), p, userID)
	if err != nil {
		return common.SendError(c, err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.OrganizationIDs != nil {
		user.OrganizationIDs = req.OrganizationIDs
	}
	if req.WarehouseIDs != nil {
		user.WarehouseIDs = req.WarehouseIDs
	}
	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := h.userService.Update(c.Request().Context(), p, user); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	p, err := principalOrErr(c)
	if err != nil {
		return common.SendError(c, err)
	}

	userID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendError(c, err)
	}

	if err := h.userService.Delete(c.Request().Context(), p, userID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "User deleted successfully",
	})
}

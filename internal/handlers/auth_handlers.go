package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// AuthHandlers handles signup, login and identity introspection.
type AuthHandlers struct {
	authService services.AuthService
	userRepo    repositories.UserRepository
}

func NewAuthHandlers(authService services.AuthService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Signup registers a new admin account and returns a token.
func (h *AuthHandlers) Signup(c echo.Context) error {
	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.authService.Signup(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// Login exchanges credentials for a token.
func (h *AuthHandlers) Login(c echo.Context) error {
	var req services.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	result, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Me returns the authenticated user record.
func (h *AuthHandlers) Me(c echo.Context) error {
	p, ok := common.GetPrincipalFromContext(c.Request().Context())
	if !ok {
		return common.SendError(c, common.ErrUnauthenticated)
	}

	user, err := h.userRepo.GetByID(c.Request().Context(), p.UserID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

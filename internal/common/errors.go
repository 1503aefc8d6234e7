package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Sentinel errors for the service layer. Handlers recover these at the
// request boundary and turn them into a structured error response; no
// retries are performed anywhere.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrAuditNotOpen    = errors.New("audit session not open")
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendError maps a service-layer error to its HTTP status and writes the
// standardized response body.
func SendError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
	case errors.Is(err, ErrForbidden):
		return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", err.Error(), nil))
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", err.Error(), nil))
	case errors.Is(err, ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", err.Error(), nil))
	case errors.Is(err, ErrConflict):
		return c.JSON(http.StatusConflict, CreateErrorResponse("CONFLICT", err.Error(), nil))
	case errors.Is(err, ErrAuditNotOpen):
		return c.JSON(http.StatusConflict, CreateErrorResponse("AUDIT_NOT_OPEN", err.Error(), nil))
	}
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", "operation could not be completed", nil))
}

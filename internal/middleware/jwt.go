package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/common"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/repositories"
	"github.com/mhmd-byi/inventory-tally-audit-sub000/internal/services"
)

// JWTConfig returns the echo-jwt configuration validating bearer tokens
// against the signing secret.
func JWTConfig(jwtSecret string) echojwt.Config {
	return echojwt.Config{
		SigningKey: []byte(jwtSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(services.AuthClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}
}

// LoadPrincipal runs after token validation and resolves the principal.
// The user record is re-read on every request so scope or role changes
// (and deactivation) apply to already-issued tokens.
func LoadPrincipal(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			claims, ok := token.Claims.(*services.AuthClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			user, err := userRepo.GetByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
			}
			if user.Status != "active" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account disabled")
			}

			principal := common.NewPrincipal(user)
			ctx := common.WithPrincipal(c.Request().Context(), principal)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

package middleware

import (
	"net/http"

	"github.com/anonto42/sach-wave/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// RequireAdmin lets admins and the owner through.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRole(models.RoleAdmin, "Admin access required")
}

// RequireOwner lets only the owner through.
func RequireOwner() echo.MiddlewareFunc {
	return requireRole(models.RoleOwner, "Owner access required")
}

func requireRole(role models.Role, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
			}
			if !user.Role.AtLeast(role) {
				return echo.NewHTTPError(http.StatusForbidden, message)
			}
			return next(c)
		}
	}
}

package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// RBAC admits callers whose role claim is one of roles.
func RBAC(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(string)
			if !slices.Contains(roles, role) {
				return c.JSON(http.StatusForbidden, &domain.ErrorResult{Message: "forbidden"})
			}
			return next(c)
		}
	}
}

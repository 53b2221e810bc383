package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/api/metrics"
	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// RequireAuth rejects requests that carry no bound session identity.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := c.Get("identity").(domain.SessionIdentity); !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// RBAC enforces flat group membership on top of RequireAuth. The principal
// must belong to at least one of the allowed groups; anything else, including
// an unknown user, is a plain 403.
func RBAC(authz ports.Authorizer, allowedGroups ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := c.Get("identity").(domain.SessionIdentity)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}

			for _, group := range allowedGroups {
				if authz.IsInGroup(c.Request().Context(), identity.UserID, group) {
					metrics.GroupChecksTotal.WithLabelValues(group, "allowed").Inc()
					return next(c)
				}
			}

			for _, group := range allowedGroups {
				metrics.GroupChecksTotal.WithLabelValues(group, "denied").Inc()
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}

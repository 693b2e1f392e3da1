package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/NatanCav/FlowFit/internal/api/metrics"
	"github.com/NatanCav/FlowFit/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Authenticate.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonMissingToken).Inc()
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[claims.Role]; !ok {
				metrics.AuthRejectionsTotal.WithLabelValues(metrics.ReasonForbidden).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireAdmin admits only callers holding the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return RBAC(domain.RoleAdmin)
}

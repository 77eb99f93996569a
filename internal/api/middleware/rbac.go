package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

// RequireRoles enforces role-based access on a route group. The role comes
// from the live identity injected by Auth, never from the token payload, so
// a role change applies to the next request. Must run after Auth.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := Identity(c)
			if identity == nil {
				return domain.ErrMissingToken
			}
			if !identity.Role.In(allowed...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

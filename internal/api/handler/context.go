package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/api/middleware"
	"github.com/gestaocontabil/backend/internal/core/domain"
)

// callerIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call when it is absent: presence proves the
// middleware ran on this route.
func callerIdentity(c echo.Context) (*domain.Identity, error) {
	identity := middleware.Identity(c)
	if identity == nil {
		return nil, domain.ErrMissingToken
	}
	return identity, nil
}

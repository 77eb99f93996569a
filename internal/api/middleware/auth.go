package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/api/metrics"
	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// identityKey is the context key the validated identity is stored under.
const identityKey = "identity"

// Auth extracts the bearer token, validates it through the auth service
// (which re-fetches the account), and injects the resulting identity into
// the request context. A missing token is reported distinctly from an
// invalid one.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("missing").Inc()
				return err
			}

			identity, err := auth.Validate(c.Request().Context(), token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(validationResult(err)).Inc()
				return err
			}

			metrics.TokenValidationsTotal.WithLabelValues("success").Inc()
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// Identity returns the identity injected by Auth, or nil when the middleware
// did not run on this route.
func Identity(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", domain.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", domain.ErrMissingToken
	}
	return parts[1], nil
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "account_disabled"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

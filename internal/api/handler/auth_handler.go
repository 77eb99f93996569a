package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/api/metrics"
	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

// sessionCookie carries the opaque server-side session id. The bearer token
// itself never travels in a cookie.
const sessionCookie = "sid"

type AuthHandler struct {
	auth     ports.AuthService
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthHandler(auth ports.AuthService, sessions ports.SessionStore, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, log: log}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	Token     string         `json:"token"`
	Profile   domain.Profile `json:"profile"`
	ExpiresAt time.Time      `json:"expires_at"`
}

// Login authenticates the email/password pair and returns the signed token
// with the cacheable profile. A server-side session is persisted under an
// opaque cookie so the frontend can restore state without re-entering
// credentials.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	sessionID := uuid.NewString()
	session := &domain.Session{
		Token:     result.Token,
		Profile:   result.Profile,
		ExpiresAt: result.ExpiresAt,
	}
	if err := h.sessions.Save(c.Request().Context(), sessionID, session); err != nil {
		// Login still succeeds; only the cookie-based restore is degraded.
		h.log.Warn().Err(err).Msg("session save failed")
	} else {
		c.SetCookie(newSessionCookie(sessionID, result.ExpiresAt))
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Token:     result.Token,
		Profile:   result.Profile,
		ExpiresAt: result.ExpiresAt,
	})
}

// Validate re-checks the caller's token and returns the live identity. The
// role in the response reflects the account record as of this call, not the
// token payload.
//
// @Summary      Validate the current token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  map[string]string
// @Router       /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}

// Session restores the session behind the sid cookie. The stored token is
// re-validated before anything is returned; a rejected token clears the
// session so the client falls back to the login form.
//
// @Summary      Restore the cookie-bound session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return domain.ErrMissingToken
	}

	session, err := h.sessions.Load(c.Request().Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrMissingToken
		}
		return err
	}

	identity, err := h.auth.Validate(c.Request().Context(), session.Token)
	if err != nil {
		// Token-level rejections and disabled accounts invalidate the whole
		// session. Transient storage failures do not.
		if !errors.Is(err, domain.ErrUnavailable) {
			if clearErr := h.sessions.Clear(c.Request().Context(), cookie.Value); clearErr != nil {
				h.log.Warn().Err(clearErr).Msg("session clear failed")
			}
		}
		return err
	}

	// The stored profile may predate a role change; rebuild it from the
	// live identity.
	profile := domain.Profile{
		ID:    identity.AccountID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}
	return c.JSON(http.StatusOK, sessionResponse{
		Token:     session.Token,
		Profile:   profile,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout clears the server-side session and expires the cookie. The bearer
// token itself stays technically valid until expiry; there is no revocation
// list.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Clear(c.Request().Context(), cookie.Value); err != nil {
			h.log.Warn().Err(err).Msg("session clear failed")
		}
	}

	expired := newSessionCookie("", time.Unix(0, 0))
	expired.MaxAge = -1
	c.SetCookie(expired)

	return c.NoContent(http.StatusNoContent)
}

func newSessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     sessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func loginResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrAccountDisabled):
		return "account_disabled"
	case errors.Is(err, domain.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gestaocontabil/backend/internal/core/domain"
)

func resolve(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return resolveError(err, zerolog.Nop(), c)
}

func TestResolveError_Taxonomy(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrAccountDisabled, http.StatusUnauthorized, "account disabled"},
		{domain.ErrMissingToken, http.StatusUnauthorized, "authentication required"},
		{domain.ErrTokenExpired, http.StatusUnauthorized, "session expired"},
		{domain.ErrInvalidSignature, http.StatusUnauthorized, "session expired"},
		{domain.ErrMalformedToken, http.StatusUnauthorized, "session expired"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrClientNotFound, http.StatusNotFound, "client not found"},
		{domain.ErrClientExists, http.StatusConflict, "client already exists"},
		{domain.ErrObligationNotFound, http.StatusNotFound, "obligation not found"},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
		{errors.New("something broke"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		code, msg := resolve(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if msg != tc.message {
			t.Errorf("%v: expected %q, got %q", tc.err, tc.message, msg)
		}
	}
}

func TestResolveError_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("account lookup: %w", domain.ErrUnavailable)
	code, _ := resolve(t, wrapped)
	if code != http.StatusServiceUnavailable {
		t.Fatalf("wrapped errors must resolve via errors.Is, got %d", code)
	}
}

func TestResolveError_TokenFailuresUniformMessage(t *testing.T) {
	// The three token failures must be indistinguishable to the client.
	seen := map[string]bool{}
	for _, err := range []error{domain.ErrTokenExpired, domain.ErrInvalidSignature, domain.ErrMalformedToken} {
		_, msg := resolve(t, err)
		seen[msg] = true
	}
	if len(seen) != 1 {
		t.Fatalf("token failures leak distinct messages: %v", seen)
	}
}

func TestResolveError_EchoHTTPError(t *testing.T) {
	code, msg := resolve(t, echo.NewHTTPError(http.StatusBadRequest, "name is required"))
	if code != http.StatusBadRequest || !strings.Contains(msg, "name is required") {
		t.Fatalf("echo errors must pass through: %d %q", code, msg)
	}
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gestaocontabil/backend/internal/api/middleware"
	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
)

type stubClientService struct {
	deleted []string
}

func (s *stubClientService) Create(_ context.Context, _ ports.CreateClientInput) (*domain.Client, error) {
	panic("not used")
}

func (s *stubClientService) Get(_ context.Context, _ string) (*domain.Client, error) {
	panic("not used")
}

func (s *stubClientService) Update(_ context.Context, _ string, _ ports.UpdateClientInput) (*domain.Client, error) {
	panic("not used")
}

func (s *stubClientService) Delete(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubClientService) List(_ context.Context, _ ports.ListClientsFilter) (*ports.ListClientsResult, error) {
	panic("not used")
}

// deleteContext builds a DELETE /clients/:id request carrying a validated
// identity, the shape the route sees after the Auth middleware ran.
func deleteContext(e *echo.Echo, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodDelete, "/clients/cli-1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/clients/:id")
	c.SetParamNames("id")
	c.SetParamValues("cli-1")
	c.Set("identity", &domain.Identity{AccountID: "acc-1", Role: role})
	return c, rec
}

func TestClientHandler_Delete_AllowsAdmin(t *testing.T) {
	e := echo.New()
	svc := &stubClientService{}
	guarded := middleware.RequireRoles(domain.RoleAdmin)(NewClientHandler(svc).Delete)

	c, rec := deleteContext(e, domain.RoleAdmin)
	if err := guarded(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "cli-1" {
		t.Fatalf("unexpected deletions: %v", svc.deleted)
	}
}

func TestClientHandler_Delete_ForbidsNonAdmins(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleContador, domain.RoleAssistente} {
		e := echo.New()
		svc := &stubClientService{}
		guarded := middleware.RequireRoles(domain.RoleAdmin)(NewClientHandler(svc).Delete)

		c, _ := deleteContext(e, role)
		if err := guarded(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %s: expected ErrForbidden, got %v", role, err)
		}
		if len(svc.deleted) != 0 {
			t.Fatalf("role %s: service must not be reached", role)
		}
	}
}

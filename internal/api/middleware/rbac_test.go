package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/collabhub/collab-platform/internal/core/domain"
)

func runRBAC(t *testing.T, role string, allowed ...domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/payouts", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	handlerRan := false
	handler := func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}

	if err := RequireRole(allowed...)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec, handlerRan
}

func TestRequireRole_Allowed(t *testing.T) {
	_, handlerRan := runRBAC(t, string(domain.RoleCreator), domain.RoleCreator)
	if !handlerRan {
		t.Fatal("creator should reach a creator-only route")
	}
}

func TestRequireRole_Denied(t *testing.T) {
	rec, handlerRan := runRBAC(t, string(domain.RoleBrand), domain.RoleCreator)
	if handlerRan {
		t.Fatal("brand must not reach a creator-only route")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRole_MultipleRoles(t *testing.T) {
	_, handlerRan := runRBAC(t, string(domain.RoleAgency), domain.RoleBrand, domain.RoleAgency)
	if !handlerRan {
		t.Fatal("agency should reach a brand-or-agency route")
	}
}

func TestRequireRole_MissingRole(t *testing.T) {
	rec, handlerRan := runRBAC(t, "", domain.RoleCreator)
	if handlerRan {
		t.Fatal("a request without a resolved role must be rejected")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

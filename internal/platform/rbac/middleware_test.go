package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newRBACContext(t *testing.T, actor *Actor) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if actor != nil {
		req = req.WithContext(WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequireModule_Allowed(t *testing.T) {
	c, rec := newRBACContext(t, &Actor{Role: RoleNurse, Active: true})

	h := RequireModule(ModuleLaboratory)(okHandler)
	if err := h(c); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireModule_Denied(t *testing.T) {
	c, _ := newRBACContext(t, &Actor{Role: RoleNurse, Active: true})

	h := RequireModule(ModuleBilling)(okHandler)
	err := h(c)
	if err == nil {
		t.Fatal("expected error for denied module")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", httpErr.Code)
	}
}

func TestRequireModule_Unauthenticated(t *testing.T) {
	c, _ := newRBACContext(t, nil)

	h := RequireModule(ModuleDashboard)(okHandler)
	if err := h(c); err == nil {
		t.Error("expected error for missing actor")
	}
}

func TestRequireRole_DeactivatedDenied(t *testing.T) {
	c, _ := newRBACContext(t, &Actor{Role: RoleAdmin, Active: false})

	h := RequireRole(RoleAdmin)(okHandler)
	if err := h(c); err == nil {
		t.Error("expected deactivated admin to be denied")
	}
}

func TestRequireRole_Allowed(t *testing.T) {
	c, _ := newRBACContext(t, &Actor{Role: RoleDoctor, Active: true})

	h := RequireRole(RoleDoctor, RoleNurse)(okHandler)
	if err := h(c); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/garmentworks/pattern-tracker/internal/core/domain"
)

func runRBAC(t *testing.T, user *domain.User, allowed ...domain.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(UserContextKey, user)
	}

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RBAC(allowed...)(next)(c); err != nil {
		t.Fatalf("rbac: %v", err)
	}
	return rec
}

func TestRBACAllowsListedRole(t *testing.T) {
	rec := runRBAC(t, &domain.User{Role: domain.RoleAdmin}, domain.RoleAdmin)
	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
}

func TestRBACForbidsOtherRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleOrderUploader, domain.RolePatternMaker, domain.RolePatternChecker, domain.RoleGeneralUser} {
		rec := runRBAC(t, &domain.User{Role: role}, domain.RoleAdmin)
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %s: got %d, want 403", role, rec.Code)
		}
	}
}

func TestRBACRejectsMissingUser(t *testing.T) {
	rec := runRBAC(t, nil, domain.RoleAdmin)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
)

type stubSession struct {
	loading       bool
	authenticated bool
	admin         bool
}

func (s *stubSession) Loading() bool                        { return s.loading }
func (s *stubSession) IsAuthenticated(context.Context) bool { return s.authenticated }
func (s *stubSession) IsAdmin(context.Context) bool         { return s.admin }

func runGuard(t *testing.T, mw echo.MiddlewareFunc, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "protected")
	})
	if err := handler(c); err != nil {
		t.Fatalf("guard returned error: %v", err)
	}
	return rec
}

func TestRequireAuth_RedirectPreservesOriginalPath(t *testing.T) {
	rec := runGuard(t, RequireAuth(&stubSession{}), "/cart")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad location header: %v", err)
	}
	if loc.Path != LoginPath {
		t.Fatalf("expected redirect to %s, got %s", LoginPath, loc.Path)
	}
	if got := loc.Query().Get("redirect"); got != "/cart" {
		t.Fatalf("original path not preserved, got %q", got)
	}
}

func TestRequireAuth_LoadingRendersPlaceholder(t *testing.T) {
	rec := runGuard(t, RequireAuth(&stubSession{loading: true}), "/cart")

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected neutral placeholder while loading, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("loading state must not redirect")
	}
}

func TestRequireAuth_AuthenticatedPassesThrough(t *testing.T) {
	rec := runGuard(t, RequireAuth(&stubSession{authenticated: true}), "/cart")

	if rec.Code != http.StatusOK || rec.Body.String() != "protected" {
		t.Fatalf("expected protected content, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequireAdmin_NonAdminNeverSeesAdminContent(t *testing.T) {
	rec := runGuard(t, RequireAdmin(&stubSession{authenticated: true}), "/admin/courses")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect for non-admin, got %d", rec.Code)
	}
	if rec.Body.String() == "protected" {
		t.Fatalf("admin content leaked to non-admin")
	}
}

func TestRequireAdmin_AdminPassesThrough(t *testing.T) {
	rec := runGuard(t, RequireAdmin(&stubSession{authenticated: true, admin: true}), "/admin/courses")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin content, got %d", rec.Code)
	}
}

func TestRequireAdmin_UnauthenticatedRedirectsToLogin(t *testing.T) {
	rec := runGuard(t, RequireAdmin(&stubSession{}), "/admin/courses")

	loc, _ := url.Parse(rec.Header().Get("Location"))
	if loc.Path != LoginPath {
		t.Fatalf("expected login redirect, got %q", rec.Header().Get("Location"))
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func gateRequest(t *testing.T, path string, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerRan := false
	handler := func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}

	if err := AccessGate(zerolog.Nop())(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec, handlerRan
}

func TestAccessGate_DashboardWithoutCookieRedirects(t *testing.T) {
	rec, handlerRan := gateRequest(t, "/dashboard/brand", nil)

	if handlerRan {
		t.Fatal("handler must not run for a cookie-less dashboard request")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/auth/login" {
		t.Errorf("Location = %q, want /auth/login", loc)
	}
}

func TestAccessGate_DashboardWithCookiePasses(t *testing.T) {
	rec, handlerRan := gateRequest(t, "/dashboard/creator", &http.Cookie{Name: SessionCookie, Value: "tok"})

	if !handlerRan {
		t.Fatal("handler should run when the session cookie is present")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAccessGate_EmptyCookieValueRedirects(t *testing.T) {
	_, handlerRan := gateRequest(t, "/dashboard/creator", &http.Cookie{Name: SessionCookie, Value: ""})

	if handlerRan {
		t.Fatal("an empty cookie value must not pass the gate")
	}
}

func TestAccessGate_PublicPathsPass(t *testing.T) {
	for _, path := range []string{"/", "/auth/login", "/auth/register"} {
		_, handlerRan := gateRequest(t, path, nil)
		if !handlerRan {
			t.Errorf("path %q should pass the gate without a cookie", path)
		}
	}
}

func TestAccessGate_NonDashboardPathUnaffected(t *testing.T) {
	_, handlerRan := gateRequest(t, "/health", nil)
	if !handlerRan {
		t.Fatal("non-dashboard paths are outside the gate's scope")
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
	"github.com/barangan-student/siaa-project09/internal/infrastructure/session"
)

// newSessionApp wires the Session middleware around a minimal login/logout
// surface backed by the in-memory container store.
func newSessionApp() *echo.Echo {
	e := echo.New()
	e.Use(Session(session.NewMemoryManager(), time.Hour))

	e.POST("/login", func(c echo.Context) error {
		binder := c.Get("session_binder").(ports.SessionBinder)
		if err := binder.Bind(c.Request().Context(), domain.SessionIdentity{UserID: 1, Username: "alice"}); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.POST("/logout", func(c echo.Context) error {
		binder := c.Get("session_binder").(ports.SessionBinder)
		if err := binder.Unbind(c.Request().Context()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/whoami", func(c echo.Context) error {
		identity, ok := c.Get("identity").(domain.SessionIdentity)
		if !ok {
			return c.NoContent(http.StatusUnauthorized)
		}
		return c.String(http.StatusOK, identity.Username)
	})

	return e
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	return nil
}

func TestSession_LoginSetsCookie(t *testing.T) {
	e := newSessionApp()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	ck := sessionCookieFrom(t, rec)
	if ck == nil || ck.Value == "" {
		t.Fatal("expected a session cookie after login")
	}
	if !ck.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}
}

func TestSession_CookieResolvesIdentity(t *testing.T) {
	e := newSessionApp()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	ck := sessionCookieFrom(t, rec)
	if ck == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "alice" {
		t.Fatalf("expected identity alice, got %q", rec.Body.String())
	}
}

func TestSession_AnonymousHasNoIdentity(t *testing.T) {
	e := newSessionApp()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSession_LoginRotatesFixatedID(t *testing.T) {
	e := newSessionApp()

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "attacker-chosen"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	ck := sessionCookieFrom(t, rec)
	if ck == nil {
		t.Fatal("expected a session cookie")
	}
	if ck.Value == "attacker-chosen" {
		t.Fatal("session id fixed before login must not survive authentication")
	}

	// The fixated id resolves to nothing.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "attacker-chosen"})
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for stale id, got %d", rec.Code)
	}
}

func TestSession_LogoutExpiresCookieAndState(t *testing.T) {
	e := newSessionApp()

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
	ck := sessionCookieFrom(t, rec)
	if ck == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	expired := sessionCookieFrom(t, rec)
	if expired == nil || expired.MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie after logout, got %+v", expired)
	}

	// The old cookie no longer resolves an identity.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(ck)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

// stubAuthorizer authorizes a fixed user/group set.
type stubAuthorizer struct {
	memberships map[int64][]string
}

func (s *stubAuthorizer) IsInGroup(_ context.Context, userID int64, group string) bool {
	for _, g := range s.memberships[userID] {
		if g == group {
			return true
		}
	}
	return false
}

func (s *stubAuthorizer) PrimaryGroup(_ context.Context, userID int64) (*domain.Group, error) {
	groups := s.memberships[userID]
	if len(groups) == 0 {
		return nil, domain.ErrNoMembership
	}
	return &domain.Group{ID: userID, Name: groups[0]}, nil
}

func newAuthedContext(t *testing.T, identity *domain.SessionIdentity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set("identity", *identity)
	}
	return c, rec
}

func TestRequireAuth_Allows(t *testing.T) {
	c, rec := newAuthedContext(t, &domain.SessionIdentity{UserID: 1, Username: "admin"})

	called := false
	handler := RequireAuth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAuth_RejectsAnonymous(t *testing.T) {
	c, rec := newAuthedContext(t, nil)

	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRBAC_AllowsMember(t *testing.T) {
	authz := &stubAuthorizer{memberships: map[int64][]string{1: {domain.GroupAdmin}}}
	c, rec := newAuthedContext(t, &domain.SessionIdentity{UserID: 1, Username: "admin"})

	called := false
	handler := RBAC(authz, domain.GroupAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsNonMember(t *testing.T) {
	authz := &stubAuthorizer{memberships: map[int64][]string{2: {domain.GroupEmployee}}}
	c, rec := newAuthedContext(t, &domain.SessionIdentity{UserID: 2, Username: "employee"})

	handler := RBAC(authz, domain.GroupAdmin)(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_ForbidsUnknownUser(t *testing.T) {
	authz := &stubAuthorizer{memberships: map[int64][]string{}}
	c, rec := newAuthedContext(t, &domain.SessionIdentity{UserID: 9999999, Username: "ghost"})

	handler := RBAC(authz, domain.GroupAdmin)(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRBAC_RejectsAnonymous(t *testing.T) {
	authz := &stubAuthorizer{memberships: map[int64][]string{}}
	c, rec := newAuthedContext(t, nil)

	handler := RBAC(authz, domain.GroupAdmin)(func(c echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})

	_ = handler(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

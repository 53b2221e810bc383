package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/core/ports"
	"github.com/barangan-student/siaa-project09/internal/core/service"
)

// CookieName is the session identifier cookie.
const CookieName = "sid"

// Session resolves the caller's session container from the sid cookie and
// injects a binder plus the current identity into the request context under
// "session_binder" and "identity". The cookie is synchronised just before the
// response is written, so identifier rotation on login and teardown on logout
// reach the client.
func Session(manager ports.SessionManager, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var incoming string
			if ck, err := c.Cookie(CookieName); err == nil {
				incoming = ck.Value
			}

			sess, err := manager.Open(c.Request().Context(), incoming)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "session unavailable")
			}

			binder := service.NewSessionBinder(sess)
			c.Set("session_binder", binder)
			if identity, err := binder.CurrentIdentity(c.Request().Context()); err == nil && identity != nil {
				c.Set("identity", *identity)
			}

			// Headers must go out before the handler commits the body.
			c.Response().Before(func() {
				syncCookie(c, sess, ttl, incoming)
			})

			return next(c)
		}
	}
}

// syncCookie reflects the container's fate onto the client: a destroyed
// container expires the cookie, a new or rotated identifier replaces it.
func syncCookie(c echo.Context, sess ports.SessionContainer, ttl time.Duration, incoming string) {
	current := sess.ID()
	switch {
	case current == "" && incoming != "":
		c.SetCookie(sessionCookie("", -1))
	case current != "" && current != incoming:
		c.SetCookie(sessionCookie(current, int(ttl.Seconds())))
	}
}

func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// binderFrom extracts the session binder injected by the Session middleware.
// Its absence means the route was mounted without that middleware, which is a
// wiring bug; fail closed rather than proceed without a session.
func binderFrom(c echo.Context) (ports.SessionBinder, error) {
	binder, ok := c.Get("session_binder").(ports.SessionBinder)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not initialised")
	}
	return binder, nil
}

// identityFrom returns the principal the Session middleware resolved for this
// request, if any.
func identityFrom(c echo.Context) (domain.SessionIdentity, bool) {
	identity, ok := c.Get("identity").(domain.SessionIdentity)
	return identity, ok
}

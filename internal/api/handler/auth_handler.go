package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/api/metrics"
	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	authorizer  ports.Authorizer
	audit       ports.AuditSink
}

// NewAuthHandler wires the auth service, authorizer and audit sink. A nil
// audit sink disables trail recording.
func NewAuthHandler(authService ports.AuthService, authorizer ports.Authorizer, audit ports.AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, authorizer: authorizer, audit: audit}
}

func (h *AuthHandler) recordAudit(username, action, result string) {
	if h.audit == nil {
		return
	}
	h.audit.Submit(domain.AuditEvent{
		Username:   username,
		Action:     action,
		Result:     result,
		OccurredAt: time.Now().UTC(),
	})
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Group    string `json:"group"    validate:"required,oneof=Admin Employee"`
}

type loginResponse struct {
	User     *domain.SessionIdentity `json:"user"`
	Group    string                  `json:"group,omitempty"`
	Redirect string                  `json:"redirect"`
}

type registerResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates a credential pair and binds the session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	binder, err := binderFrom(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	identity, err := h.authService.Authenticate(ctx, binder, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_input").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid input"})
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginAttemptsTotal.WithLabelValues("invalid_credentials").Inc()
			h.recordAudit(req.Username, domain.AuditActionLogin, domain.AuditResultFailure)
			// One generic message for unknown user and wrong password alike.
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			h.recordAudit(req.Username, domain.AuditActionLogin, domain.AuditResultDenied)
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many failed attempts, try again later"})
		default:
			metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.recordAudit(identity.Username, domain.AuditActionLogin, domain.AuditResultSuccess)

	group := ""
	if g, err := h.authorizer.PrimaryGroup(ctx, identity.UserID); err == nil {
		group = g.Name
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:     identity,
		Group:    group,
		Redirect: routeForGroup(group),
	})
}

// Register creates an account in the chosen seed group.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password, req.Group)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate_username").Inc()
			h.recordAudit(req.Username, domain.AuditActionRegister, domain.AuditResultFailure)
			return c.JSON(http.StatusConflict, map[string]string{"error": "username already exists"})
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.RegistrationsTotal.WithLabelValues("invalid_input").Inc()
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid input"})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return err
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	h.recordAudit(user.Username, domain.AuditActionRegister, domain.AuditResultSuccess)
	return c.JSON(http.StatusCreated, registerResponse{User: user})
}

// Logout tears down the caller's session.
//
// @Summary      Log out
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	binder, err := binderFrom(c)
	if err != nil {
		return err
	}
	username := ""
	if identity, ok := identityFrom(c); ok {
		username = identity.Username
	}

	if err := h.authService.Logout(c.Request().Context(), binder); err != nil {
		return err
	}
	metrics.LogoutsTotal.Inc()
	if username != "" {
		h.recordAudit(username, domain.AuditActionLogout, domain.AuditResultSuccess)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the principal bound to the caller's session.
//
// @Summary      Current session identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := identityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}

	group := ""
	if g, err := h.authorizer.PrimaryGroup(c.Request().Context(), identity.UserID); err == nil {
		group = g.Name
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:     &identity,
		Group:    group,
		Redirect: routeForGroup(group),
	})
}

// routeForGroup mirrors the post-login routing switch: each seed group has a
// dashboard, everything else lands on the access-denied page.
func routeForGroup(group string) string {
	switch group {
	case domain.GroupAdmin:
		return "/dashboard/admin"
	case domain.GroupEmployee:
		return "/dashboard/employee"
	default:
		return "/access-denied"
	}
}

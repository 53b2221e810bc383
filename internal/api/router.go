package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/barangan-student/siaa-project09/internal/api/handler"
	"github.com/barangan-student/siaa-project09/internal/api/middleware"
	"github.com/barangan-student/siaa-project09/internal/core/domain"
	"github.com/barangan-student/siaa-project09/internal/core/ports"
)

// Dependencies carries everything the router wires together. Components are
// constructed in main and passed in explicitly; the router holds no ambient
// state.
type Dependencies struct {
	Auth       ports.AuthService
	Authz      ports.Authorizer
	Sessions   ports.SessionManager
	Audit      ports.AuditSink
	Store      handler.Pinger
	Redis      *redis.Client
	SessionTTL time.Duration
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("siaa"))
	e.Use(middleware.Session(deps.Sessions, deps.SessionTTL))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Authz, deps.Audit)
	dashboardHandler := handler.NewDashboardHandler()

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, middleware.RequireAuth())
	e.GET("/auth/me", authHandler.Me, middleware.RequireAuth())

	// --- Group-gated dashboards ---
	e.GET("/dashboard/admin", dashboardHandler.Admin,
		middleware.RequireAuth(), middleware.RBAC(deps.Authz, domain.GroupAdmin))
	e.GET("/dashboard/employee", dashboardHandler.Employee,
		middleware.RequireAuth(), middleware.RBAC(deps.Authz, domain.GroupEmployee))
	e.GET("/access-denied", dashboardHandler.AccessDenied)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Store, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

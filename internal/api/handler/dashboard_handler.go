package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barangan-student/siaa-project09/internal/core/domain"
)

// DashboardHandler serves the group-gated landing payloads. Group enforcement
// itself lives in the RBAC middleware; by the time these run the caller is
// known to hold the required membership.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Dashboard string `json:"dashboard"`
	Username  string `json:"username"`
}

// Admin serves the Admin dashboard payload.
//
// @Summary      Admin dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /dashboard/admin [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	identity, _ := identityFrom(c)
	return c.JSON(http.StatusOK, dashboardResponse{
		Dashboard: domain.GroupAdmin,
		Username:  identity.Username,
	})
}

// Employee serves the Employee dashboard payload.
//
// @Summary      Employee dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /dashboard/employee [get]
func (h *DashboardHandler) Employee(c echo.Context) error {
	identity, _ := identityFrom(c)
	return c.JSON(http.StatusOK, dashboardResponse{
		Dashboard: domain.GroupEmployee,
		Username:  identity.Username,
	})
}

// AccessDenied is the landing spot for principals without a usable group.
//
// @Summary      Access denied
// @Tags         dashboard
// @Produce      json
// @Failure      403  {object}  map[string]string
// @Router       /access-denied [get]
func (h *DashboardHandler) AccessDenied(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
}

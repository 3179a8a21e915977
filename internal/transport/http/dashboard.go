package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardMetrics returns the dashboard figures.
// GET /api/dashboard/metrics
func (h *Handler) DashboardMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Dashboard.Metrics(c.Request().Context()))
}

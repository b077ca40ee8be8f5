package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// defaultMetricsWindowDays is the dashboard window when none is requested.
const defaultMetricsWindowDays = 30

// DashboardHandler serves the aggregate metrics endpoint.
type DashboardHandler struct {
	dashboard ports.DashboardService
}

// NewDashboardHandler wires a DashboardHandler.
func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Metrics returns workflow statistics over a trailing window of days.
//
//	@Summary	Dashboard metrics
//	@Tags		dashboard
//	@Produce	json
//	@Param		days	query		int	false	"window size in days, default 30"
//	@Success	200		{object}	ports.DashboardMetrics
//	@Security	BearerAuth
//	@Router		/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c echo.Context) error {
	days := defaultMetricsWindowDays
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		days = parsed
	}

	m, err := h.dashboard.Metrics(c.Request().Context(), days)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

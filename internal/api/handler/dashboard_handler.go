package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

// DashboardHandler serves the main-page aggregates.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type salesPointResponse struct {
	Day   string  `json:"day"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

type dashboardResponse struct {
	EfficiencyPercent int                  `json:"efficiencyPercent"`
	WorkingCount      int                  `json:"workingCount"`
	OfflineCount      int                  `json:"offlineCount"`
	ServiceCount      int                  `json:"serviceCount"`
	SalesTotal        float64              `json:"salesTotal"`
	CashTotal         float64              `json:"cashTotal"`
	MaintenanceTotal  int                  `json:"maintenanceTotal"`
	SalesChart        []salesPointResponse `json:"salesChart"`
	News              []string             `json:"news"`
}

// Overview returns the dashboard aggregates.
func (h *DashboardHandler) Overview(c echo.Context) error {
	dashboard, err := h.service.Overview(c.Request().Context())
	if err != nil {
		return err
	}

	chart := make([]salesPointResponse, 0, len(dashboard.SalesPoints))
	for _, p := range dashboard.SalesPoints {
		chart = append(chart, salesPointResponse{Day: p.Day, Sum: p.Sum, Count: p.Count})
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		EfficiencyPercent: dashboard.EfficiencyPercent,
		WorkingCount:      dashboard.WorkingCount,
		OfflineCount:      dashboard.OfflineCount,
		ServiceCount:      dashboard.ServiceCount,
		SalesTotal:        dashboard.SalesTotal,
		CashTotal:         dashboard.CashTotal,
		MaintenanceTotal:  dashboard.MaintenanceTotal,
		SalesChart:        chart,
		News:              dashboard.News,
	})
}

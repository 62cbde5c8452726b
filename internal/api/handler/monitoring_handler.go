package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

// MonitoringHandler serves the live machine monitoring view.
type MonitoringHandler struct {
	service ports.MonitoringService
}

func NewMonitoringHandler(service ports.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

type monitoringItemResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Provider         string  `json:"provider"`
	Status           string  `json:"status"`
	CheckedAt        string  `json:"checkedAt"`
	TotalIncome      float64 `json:"totalIncome"`
	ConnectionState  string  `json:"connectionState"`
	CashInMachine    float64 `json:"cashInMachine"`
	LastEvent        string  `json:"lastEvent"`
	Equipment        string  `json:"equipment"`
	InfoStatus       string  `json:"infoStatus"`
	AdditionalStatus string  `json:"additionalStatus"`
	LoadItems        int     `json:"loadItems"`
}

// Machines returns the monitoring rows, optionally filtered by status,
// connection type or generated additional status.
func (h *MonitoringHandler) Machines(c echo.Context) error {
	items, err := h.service.Machines(c.Request().Context(), ports.MonitoringFilter{
		Status:           c.QueryParam("status"),
		ConnectionTypeID: c.QueryParam("connectionTypeId"),
		AdditionalStatus: c.QueryParam("additionalStatus"),
	})
	if err != nil {
		return err
	}

	resp := make([]monitoringItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, monitoringItemResponse{
			ID:               item.ID,
			Name:             item.Name,
			Provider:         item.Provider,
			Status:           item.Status,
			CheckedAt:        item.CheckedAt.Format(time.RFC3339),
			TotalIncome:      item.TotalIncome,
			ConnectionState:  item.ConnectionState,
			CashInMachine:    item.CashInMachine,
			LastEvent:        item.LastEvent,
			Equipment:        item.Equipment,
			InfoStatus:       item.InfoStatus,
			AdditionalStatus: item.AdditionalStatus,
			LoadItems:        item.LoadItems,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

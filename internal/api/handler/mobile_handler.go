package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/api/metrics"
	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// MobileHandler serves the field-technician work-order endpoints.
type MobileHandler struct {
	service ports.RequestService
}

func NewMobileHandler(service ports.RequestService) *MobileHandler {
	return &MobileHandler{service: service}
}

type requestCardResponse struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	MachineName string `json:"machineName"`
	ServiceType string `json:"serviceType"`
	Status      string `json:"status"`
	PlannedDate string `json:"plannedDate"`
	Address     string `json:"address"`
}

type requestDetailResponse struct {
	ID              int64   `json:"id"`
	Number          string  `json:"number"`
	Status          string  `json:"status"`
	ServiceType     string  `json:"serviceType"`
	PlannedDate     string  `json:"plannedDate"`
	Notes           string  `json:"notes,omitempty"`
	DeclineReason   *string `json:"declineReason,omitempty"`
	AssignedTo      *int64  `json:"assignedTo,omitempty"`
	MachineName     string  `json:"machineName"`
	Address         string  `json:"address"`
	Place           string  `json:"place"`
	SerialNumber    string  `json:"serialNumber"`
	InventoryNumber string  `json:"inventoryNumber"`
	CreatedAt       string  `json:"createdAt"`
}

type historyEntryResponse struct {
	Status    string `json:"status"`
	ChangedAt string `json:"changedAt"`
	ChangedBy string `json:"changedBy,omitempty"`
}

type declineRequest struct {
	Reason string `json:"reason"`
}

func pathRequestID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid request id")
	}
	return id, nil
}

// List returns the caller's work orders, or the global list when the caller
// has none.
func (h *MobileHandler) List(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	cards, err := h.service.List(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	items := make([]requestCardResponse, 0, len(cards))
	for _, card := range cards {
		items = append(items, requestCardResponse{
			ID:          card.ID,
			Number:      card.Number,
			MachineName: card.MachineName,
			ServiceType: card.ServiceType,
			Status:      card.Status,
			PlannedDate: card.PlannedDate.Format(time.RFC3339),
			Address:     card.Address,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns the full detail of one work order.
func (h *MobileHandler) Get(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}
	id, err := pathRequestID(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Get(c.Request().Context(), id, accountID)
	if err != nil {
		return err
	}

	resp := requestDetailResponse{
		ID:              detail.ID,
		Number:          detail.Number,
		Status:          detail.Status,
		ServiceType:     detail.ServiceType,
		PlannedDate:     detail.PlannedDate.Format(time.RFC3339),
		Notes:           detail.Notes,
		DeclineReason:   detail.DeclineReason,
		MachineName:     detail.MachineName,
		Address:         detail.Address,
		Place:           detail.Place,
		SerialNumber:    detail.SerialNumber,
		InventoryNumber: detail.InventoryNumber,
		CreatedAt:       detail.CreatedAt.Format(time.RFC3339),
	}
	if detail.Assignment.Assigned {
		assignee := detail.Assignment.AccountID
		resp.AssignedTo = &assignee
	}
	return c.JSON(http.StatusOK, resp)
}

// History returns the status log of a work order, newest first.
func (h *MobileHandler) History(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}
	id, err := pathRequestID(c)
	if err != nil {
		return err
	}

	entries, err := h.service.History(c.Request().Context(), id, accountID)
	if err != nil {
		return err
	}

	items := make([]historyEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, historyEntryResponse{
			Status:    entry.Status,
			ChangedAt: entry.ChangedAt.Format(time.RFC3339),
			ChangedBy: entry.ChangedBy,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// Accept claims a work order for the caller and moves it to "In progress".
func (h *MobileHandler) Accept(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}
	id, err := pathRequestID(c)
	if err != nil {
		return err
	}

	if err := h.service.Accept(c.Request().Context(), id, accountID); err != nil {
		metrics.RequestTransitionsTotal.WithLabelValues("accept", transitionResult(err)).Inc()
		return err
	}
	metrics.RequestTransitionsTotal.WithLabelValues("accept", "success").Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": domain.StatusInProgress})
}

// Decline cancels a work order with a mandatory reason.
func (h *MobileHandler) Decline(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}
	id, err := pathRequestID(c)
	if err != nil {
		return err
	}

	var req declineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Decline(c.Request().Context(), id, accountID, req.Reason); err != nil {
		metrics.RequestTransitionsTotal.WithLabelValues("decline", transitionResult(err)).Inc()
		return err
	}
	metrics.RequestTransitionsTotal.WithLabelValues("decline", "success").Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": domain.StatusCancelled})
}

func transitionResult(err error) string {
	if errors.Is(err, domain.ErrForbidden) {
		return "denied"
	}
	return "error"
}

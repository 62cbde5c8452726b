package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

// MachineHandler handles HTTP requests for vending machine management.
type MachineHandler struct {
	service ports.MachineService
}

func NewMachineHandler(service ports.MachineService) *MachineHandler {
	return &MachineHandler{service: service}
}

// pathMachineID parses the :id path segment as the machine's external GUID.
func pathMachineID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid machine id")
	}
	return id, nil
}

// List returns a page of machines, optionally filtered by a partial name match.
//
// @Summary      List vending machines
// @Tags         vending-machines
// @Produce      json
// @Param        search    query     string  false  "Partial name match"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        pageSize  query     int     false  "Page size (max 100)"
// @Success      200       {object}  machineListResponse
// @Router       /api/vending-machines [get]
func (h *MachineHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	result, err := h.service.List(c.Request().Context(), ports.ListMachinesFilter{
		Search:   c.QueryParam("search"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, machineListResponseFrom(result))
}

// Get returns one machine by its external GUID.
func (h *MachineHandler) Get(c echo.Context) error {
	id, err := pathMachineID(c)
	if err != nil {
		return err
	}

	machine, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, machineResponseFrom(machine))
}

// Create registers a new machine and returns its assigned external GUID.
//
// @Summary      Create a vending machine
// @Tags         vending-machines
// @Accept       json
// @Produce      json
// @Param        body  body      machineRequest  true  "Machine fields"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/vending-machines [post]
func (h *MachineHandler) Create(c echo.Context) error {
	var req machineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	id, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

// Update replaces all writable fields of a machine.
func (h *MachineHandler) Update(c echo.Context) error {
	id, err := pathMachineID(c)
	if err != nil {
		return err
	}

	var req machineRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	}

	if err := h.service.Update(c.Request().Context(), id, input); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a machine.
func (h *MachineHandler) Delete(c echo.Context) error {
	id, err := pathMachineID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// UnlinkModem detaches the modem from a machine.
func (h *MachineHandler) UnlinkModem(c echo.Context) error {
	id, err := pathMachineID(c)
	if err != nil {
		return err
	}

	if err := h.service.UnlinkModem(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

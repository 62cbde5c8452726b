package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// CompanyHandler handles HTTP requests for company management.
type CompanyHandler struct {
	service ports.CompanyService
}

func NewCompanyHandler(service ports.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: service}
}

type companyRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Address string `json:"address,omitempty"`
}

type companyResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func companyResponseFrom(c domain.Company) companyResponse {
	return companyResponse{
		ID:      c.ID,
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}

func pathCompanyID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	return id, nil
}

// List returns all companies ordered by name.
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.service.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return err
	}

	items := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, companyResponseFrom(company))
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one company.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathCompanyID(c)
	if err != nil {
		return err
	}

	company, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, companyResponseFrom(*company))
}

// Create registers a new company.
func (h *CompanyHandler) Create(c echo.Context) error {
	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.service.Create(c.Request().Context(), ports.CompanyInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]int64{"id": id})
}

// Update replaces the writable fields of a company.
func (h *CompanyHandler) Update(c echo.Context) error {
	id, err := pathCompanyID(c)
	if err != nil {
		return err
	}

	var req companyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), id, ports.CompanyInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a company. Companies still linked to machines or accounts
// answer 409.
func (h *CompanyHandler) Delete(c echo.Context) error {
	id, err := pathCompanyID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

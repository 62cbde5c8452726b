package handler

import (
	"time"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

const dateLayout = "2006-01-02"

type machineRequest struct {
	Name              string `json:"name" validate:"required"`
	ModelID           int64  `json:"modelId" validate:"required,gt=0"`
	StatusID          int64  `json:"statusId" validate:"required,gt=0"`
	CompanyID         *int64 `json:"companyId,omitempty"`
	ModemID           *int64 `json:"modemId,omitempty"`
	Address           string `json:"address"`
	Place             string `json:"place"`
	InventoryNumber   string `json:"inventoryNumber" validate:"required"`
	SerialNumber      string `json:"serialNumber" validate:"required"`
	ManufactureDate   string `json:"manufactureDate" validate:"required"`
	CommissioningDate string `json:"commissioningDate" validate:"required"`
	NextServiceDate   string `json:"nextServiceDate,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

type machineListItem struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ModelName         string  `json:"modelName"`
	CompanyName       *string `json:"companyName"`
	ModemID           int64   `json:"modemId"`
	Address           string  `json:"address"`
	Place             string  `json:"place"`
	CommissioningDate string  `json:"commissioningDate"`
}

type machineListResponse struct {
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Items    []machineListItem `json:"items"`
}

type machineResponse struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	ModelID           int64  `json:"modelId"`
	StatusID          int64  `json:"statusId"`
	CompanyID         *int64 `json:"companyId"`
	ModemID           *int64 `json:"modemId"`
	Address           string `json:"address"`
	Place             string `json:"place"`
	InventoryNumber   string `json:"inventoryNumber"`
	SerialNumber      string `json:"serialNumber"`
	ManufactureDate   string `json:"manufactureDate"`
	CommissioningDate string `json:"commissioningDate"`
	NextServiceDate   string `json:"nextServiceDate,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

func (r machineRequest) toInput() (ports.MachineInput, error) {
	manufactured, err := time.Parse(dateLayout, r.ManufactureDate)
	if err != nil {
		return ports.MachineInput{}, err
	}
	commissioned, err := time.Parse(dateLayout, r.CommissioningDate)
	if err != nil {
		return ports.MachineInput{}, err
	}

	input := ports.MachineInput{
		Name:              r.Name,
		ModelID:           r.ModelID,
		StatusID:          r.StatusID,
		CompanyID:         r.CompanyID,
		ModemID:           r.ModemID,
		Address:           r.Address,
		Place:             r.Place,
		InventoryNumber:   r.InventoryNumber,
		SerialNumber:      r.SerialNumber,
		ManufactureDate:   manufactured,
		CommissioningDate: commissioned,
		Notes:             r.Notes,
	}
	if r.NextServiceDate != "" {
		next, err := time.Parse(dateLayout, r.NextServiceDate)
		if err != nil {
			return ports.MachineInput{}, err
		}
		input.NextServiceDate = &next
	}
	return input, nil
}

func machineListResponseFrom(result *ports.ListMachinesResult) machineListResponse {
	items := make([]machineListItem, 0, len(result.Items))
	for _, row := range result.Items {
		items = append(items, machineListItem{
			ID:                row.ExternalID.String(),
			Name:              row.Name,
			ModelName:         row.ModelName,
			CompanyName:       row.CompanyName,
			ModemID:           row.ModemID,
			Address:           row.Address,
			Place:             row.Place,
			CommissioningDate: row.CommissioningDate.Format(dateLayout),
		})
	}
	return machineListResponse{
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
		Items:    items,
	}
}

func machineResponseFrom(m *domain.Machine) machineResponse {
	resp := machineResponse{
		ID:                m.ExternalID.String(),
		Name:              m.Name,
		ModelID:           m.ModelID,
		StatusID:          m.StatusID,
		CompanyID:         m.CompanyID,
		ModemID:           m.ModemID,
		Address:           m.Address,
		Place:             m.Place,
		InventoryNumber:   m.InventoryNumber,
		SerialNumber:      m.SerialNumber,
		ManufactureDate:   m.ManufactureDate.Format(dateLayout),
		CommissioningDate: m.CommissioningDate.Format(dateLayout),
		Notes:             m.Notes,
	}
	if m.NextServiceDate != nil {
		resp.NextServiceDate = m.NextServiceDate.Format(dateLayout)
	}
	return resp
}

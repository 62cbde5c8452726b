package domain

import (
	"time"

	"github.com/google/uuid"
)

// Machine is the vending machine aggregate. The internal numeric ID stays
// inside the store; clients address machines by ExternalID.
type Machine struct {
	ID                int64
	ExternalID        uuid.UUID
	Name              string
	ModelID           int64
	StatusID          int64
	CompanyID         *int64
	ModemID           *int64
	Address           string
	Place             string
	InventoryNumber   string
	SerialNumber      string
	ManufactureDate   time.Time
	CommissioningDate time.Time
	NextServiceDate   *time.Time
	Notes             string
	CreatedAt         time.Time
}

// MachineListRow is the denormalised row used by the paged machine list:
// the machine joined with its model and owning company names.
type MachineListRow struct {
	ExternalID        uuid.UUID
	Name              string
	ModelName         string
	CompanyName       *string
	ModemID           int64 // -1 when no modem is linked
	Address           string
	Place             string
	CommissioningDate time.Time
}

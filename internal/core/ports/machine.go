package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// ListMachinesFilter carries the query parameters for the paged machine list.
type ListMachinesFilter struct {
	Search   string // optional: partial match on machine name
	Page     int    // 1-based
	PageSize int
}

// MachineRepository defines persistence operations for vending machines.
type MachineRepository interface {
	// List returns a page of machines plus the total match count.
	List(ctx context.Context, filter ListMachinesFilter) ([]domain.MachineListRow, int, error)
	FindByExternalID(ctx context.Context, id uuid.UUID) (*domain.Machine, error)
	// Create persists the machine. Serial and inventory numbers are unique;
	// violations surface as domain.ErrDuplicateSerialNumber /
	// domain.ErrDuplicateInventoryNumber.
	Create(ctx context.Context, m *domain.Machine) error
	Update(ctx context.Context, m *domain.Machine) error
	Delete(ctx context.Context, id uuid.UUID) error
	UnlinkModem(ctx context.Context, id uuid.UUID) error
}

// MachineInput carries all writable machine fields for create and update.
type MachineInput struct {
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
}

// ListMachinesResult is one page of the machine list.
type ListMachinesResult struct {
	Total    int
	Page     int
	PageSize int
	Items    []domain.MachineListRow
}

// MachineService defines use-case operations for vending machines.
type MachineService interface {
	List(ctx context.Context, filter ListMachinesFilter) (*ListMachinesResult, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Machine, error)
	Create(ctx context.Context, input MachineInput) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, input MachineInput) error
	Delete(ctx context.Context, id uuid.UUID) error
	UnlinkModem(ctx context.Context, id uuid.UUID) error
}

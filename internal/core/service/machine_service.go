package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// MachineService is the CRUD layer over vending machines. It owns pagination
// guards and external id assignment; uniqueness is enforced by the store.
type MachineService struct {
	repo ports.MachineRepository
	log  zerolog.Logger
}

func NewMachineService(repo ports.MachineRepository, log zerolog.Logger) *MachineService {
	return &MachineService{repo: repo, log: log}
}

func (s *MachineService) List(ctx context.Context, filter ports.ListMachinesFilter) (*ports.ListMachinesResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ports.ListMachinesResult{
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Items:    items,
	}, nil
}

func (s *MachineService) Get(ctx context.Context, id uuid.UUID) (*domain.Machine, error) {
	return s.repo.FindByExternalID(ctx, id)
}

func (s *MachineService) Create(ctx context.Context, input ports.MachineInput) (uuid.UUID, error) {
	m := machineFromInput(input)
	m.ExternalID = uuid.New()
	m.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, m); err != nil {
		return uuid.Nil, err
	}

	s.log.Info().Str("machine_id", m.ExternalID.String()).Str("name", m.Name).Msg("vending machine created")
	return m.ExternalID, nil
}

func (s *MachineService) Update(ctx context.Context, id uuid.UUID, input ports.MachineInput) error {
	m := machineFromInput(input)
	m.ExternalID = id
	return s.repo.Update(ctx, m)
}

func (s *MachineService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *MachineService) UnlinkModem(ctx context.Context, id uuid.UUID) error {
	return s.repo.UnlinkModem(ctx, id)
}

func machineFromInput(input ports.MachineInput) *domain.Machine {
	return &domain.Machine{
		Name:              input.Name,
		ModelID:           input.ModelID,
		StatusID:          input.StatusID,
		CompanyID:         input.CompanyID,
		ModemID:           input.ModemID,
		Address:           input.Address,
		Place:             input.Place,
		InventoryNumber:   input.InventoryNumber,
		SerialNumber:      input.SerialNumber,
		ManufactureDate:   input.ManufactureDate,
		CommissioningDate: input.CommissioningDate,
		NextServiceDate:   input.NextServiceDate,
		Notes:             input.Notes,
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

type stubMachineRepo struct {
	lastFilter ports.ListMachinesFilter
	machines   map[uuid.UUID]*domain.Machine
	createErr  error
}

func newStubMachineRepo() *stubMachineRepo {
	return &stubMachineRepo{machines: make(map[uuid.UUID]*domain.Machine)}
}

func (r *stubMachineRepo) List(_ context.Context, filter ports.ListMachinesFilter) ([]domain.MachineListRow, int, error) {
	r.lastFilter = filter
	return nil, len(r.machines), nil
}

func (r *stubMachineRepo) FindByExternalID(_ context.Context, id uuid.UUID) (*domain.Machine, error) {
	m, ok := r.machines[id]
	if !ok {
		return nil, domain.ErrMachineNotFound
	}
	return m, nil
}

func (r *stubMachineRepo) Create(_ context.Context, m *domain.Machine) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.machines[m.ExternalID] = m
	return nil
}

func (r *stubMachineRepo) Update(_ context.Context, m *domain.Machine) error {
	if _, ok := r.machines[m.ExternalID]; !ok {
		return domain.ErrMachineNotFound
	}
	r.machines[m.ExternalID] = m
	return nil
}

func (r *stubMachineRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.machines[id]; !ok {
		return domain.ErrMachineNotFound
	}
	delete(r.machines, id)
	return nil
}

func (r *stubMachineRepo) UnlinkModem(_ context.Context, id uuid.UUID) error {
	m, ok := r.machines[id]
	if !ok {
		return domain.ErrMachineNotFound
	}
	m.ModemID = nil
	return nil
}

func TestMachineService_List_PaginationGuards(t *testing.T) {
	repo := newStubMachineRepo()
	svc := NewMachineService(repo, zerolog.Nop())

	tests := []struct {
		name         string
		page, size   int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"oversized page size", 2, 500, 2, 100},
		{"in range", 3, 50, 3, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.List(context.Background(), ports.ListMachinesFilter{Page: tt.page, PageSize: tt.size})
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if repo.lastFilter.Page != tt.wantPage || repo.lastFilter.PageSize != tt.wantPageSize {
				t.Fatalf("filter not clamped: got page=%d size=%d", repo.lastFilter.Page, repo.lastFilter.PageSize)
			}
			if result.Page != tt.wantPage || result.PageSize != tt.wantPageSize {
				t.Fatalf("result echoes wrong paging: page=%d size=%d", result.Page, result.PageSize)
			}
		})
	}
}

func TestMachineService_Create_AssignsExternalID(t *testing.T) {
	repo := newStubMachineRepo()
	svc := NewMachineService(repo, zerolog.Nop())

	id, err := svc.Create(context.Background(), ports.MachineInput{
		Name:            "SnackPoint 12",
		ModelID:         1,
		StatusID:        1,
		SerialNumber:    "SN-001",
		InventoryNumber: "INV-001",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatalf("expected a generated external id")
	}

	stored, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CreatedAt.IsZero() {
		t.Fatalf("created timestamp not set")
	}
}

func TestMachineService_Create_PropagatesDuplicateSerial(t *testing.T) {
	repo := newStubMachineRepo()
	repo.createErr = domain.ErrDuplicateSerialNumber
	svc := NewMachineService(repo, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.MachineInput{Name: "x", ModelID: 1, StatusID: 1})
	if !errors.Is(err, domain.ErrDuplicateSerialNumber) {
		t.Fatalf("expected ErrDuplicateSerialNumber, got %v", err)
	}
}

func TestMachineService_UnlinkModem(t *testing.T) {
	repo := newStubMachineRepo()
	svc := NewMachineService(repo, zerolog.Nop())

	modemID := int64(5)
	id, err := svc.Create(context.Background(), ports.MachineInput{
		Name: "SnackPoint 12", ModelID: 1, StatusID: 1, ModemID: &modemID,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.UnlinkModem(context.Background(), id); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	stored, _ := svc.Get(context.Background(), id)
	if stored.ModemID != nil {
		t.Fatalf("modem still linked")
	}

	if err := svc.UnlinkModem(context.Background(), uuid.New()); !errors.Is(err, domain.ErrMachineNotFound) {
		t.Fatalf("expected ErrMachineNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

type stubMonitoringRepo struct {
	overviews []domain.MachineOverview
}

func (r *stubMonitoringRepo) MachineOverviews(_ context.Context) ([]domain.MachineOverview, error) {
	return r.overviews, nil
}

func monitoringFixture() *stubMonitoringRepo {
	ct := int64(2)
	return &stubMonitoringRepo{overviews: []domain.MachineOverview{
		{MachineID: 1, ExternalID: uuid.New(), Name: "VM-1", StatusName: "Operational", ProviderName: "MTS", ConnectionTypeID: &ct, LastEventMessage: "door opened", Equipment: "Coffee module", TotalIncome: 1200},
		{MachineID: 2, ExternalID: uuid.New(), Name: "VM-2", StatusName: "Offline", ProviderName: "-", LastEventMessage: "-", Equipment: "-"},
	}}
}

func TestMonitoringService_FiltersByStatus(t *testing.T) {
	svc := NewMonitoringService(monitoringFixture(), NewStatusGenerator(), zerolog.Nop())

	items, err := svc.Machines(context.Background(), ports.MonitoringFilter{Status: "offline"})
	if err != nil {
		t.Fatalf("machines failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "VM-2" {
		t.Fatalf("expected only VM-2, got %+v", items)
	}
}

func TestMonitoringService_FiltersByConnectionType(t *testing.T) {
	svc := NewMonitoringService(monitoringFixture(), NewStatusGenerator(), zerolog.Nop())

	items, err := svc.Machines(context.Background(), ports.MonitoringFilter{ConnectionTypeID: "2"})
	if err != nil {
		t.Fatalf("machines failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "VM-1" {
		t.Fatalf("expected only VM-1, got %+v", items)
	}
}

func TestMonitoringService_RejectsBadConnectionType(t *testing.T) {
	svc := NewMonitoringService(monitoringFixture(), NewStatusGenerator(), zerolog.Nop())

	if _, err := svc.Machines(context.Background(), ports.MonitoringFilter{ConnectionTypeID: "gsm"}); err != domain.ErrInvalidConnectionType {
		t.Fatalf("expected ErrInvalidConnectionType, got %v", err)
	}
}

func TestMonitoringService_EnrichesWithGeneratedStatus(t *testing.T) {
	repo := monitoringFixture()
	gen := NewStatusGenerator()
	svc := NewMonitoringService(repo, gen, zerolog.Nop())

	items, err := svc.Machines(context.Background(), ports.MonitoringFilter{})
	if err != nil {
		t.Fatalf("machines failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	want := gen.Generate(repo.overviews[0].MachineID)
	if items[0].ConnectionState != want.ConnectionState || items[0].LoadItems != want.LoadItems {
		t.Fatalf("generated fields not applied: %+v vs %+v", items[0], want)
	}
}

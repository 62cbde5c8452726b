package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

type stubDashboardRepo struct {
	counts      ports.StatusCounts
	sales       float64
	cash        float64
	maintenance int
	byDay       []ports.DailySales
	news        []string
}

func (r *stubDashboardRepo) MachineStatusCounts(_ context.Context) (ports.StatusCounts, error) {
	return r.counts, nil
}
func (r *stubDashboardRepo) SalesTotal(_ context.Context) (float64, error)      { return r.sales, nil }
func (r *stubDashboardRepo) CashIncomeTotal(_ context.Context) (float64, error) { return r.cash, nil }
func (r *stubDashboardRepo) MaintenanceCount(_ context.Context) (int, error)    { return r.maintenance, nil }
func (r *stubDashboardRepo) SalesByDay(_ context.Context, _ time.Time) ([]ports.DailySales, error) {
	return r.byDay, nil
}
func (r *stubDashboardRepo) LatestEventMessages(_ context.Context, _ int) ([]string, error) {
	return r.news, nil
}

func TestDashboardService_Efficiency(t *testing.T) {
	repo := &stubDashboardRepo{counts: ports.StatusCounts{Total: 8, Working: 6, Offline: 1, Service: 1}}
	svc := NewDashboardService(repo, zerolog.Nop())

	d, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if d.EfficiencyPercent != 75 {
		t.Fatalf("expected 75%% efficiency, got %d", d.EfficiencyPercent)
	}
}

func TestDashboardService_EmptyFleet(t *testing.T) {
	svc := NewDashboardService(&stubDashboardRepo{}, zerolog.Nop())

	d, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if d.EfficiencyPercent != 0 {
		t.Fatalf("expected 0%% efficiency for empty fleet, got %d", d.EfficiencyPercent)
	}
	if len(d.News) != 3 {
		t.Fatalf("expected fallback news, got %v", d.News)
	}
}

func TestDashboardService_SalesChartZeroFills(t *testing.T) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	repo := &stubDashboardRepo{
		byDay: []ports.DailySales{
			{Day: today, Sum: 150, Count: 3},
			{Day: today.AddDate(0, 0, -2), Sum: 90, Count: 2},
		},
	}
	svc := NewDashboardService(repo, zerolog.Nop())

	d, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if len(d.SalesPoints) != salesChartDays {
		t.Fatalf("expected %d points, got %d", salesChartDays, len(d.SalesPoints))
	}

	last := d.SalesPoints[len(d.SalesPoints)-1]
	if last.Day != today.Format("02.01") || last.Sum != 150 || last.Count != 3 {
		t.Fatalf("unexpected last point: %+v", last)
	}

	zeroDays := 0
	for _, p := range d.SalesPoints {
		if p.Sum == 0 && p.Count == 0 {
			zeroDays++
		}
	}
	if zeroDays != salesChartDays-2 {
		t.Fatalf("expected %d zero-filled days, got %d", salesChartDays-2, zeroDays)
	}
}

func TestDashboardService_NewsFromEvents(t *testing.T) {
	repo := &stubDashboardRepo{news: []string{"coin jam cleared", "restocked"}}
	svc := NewDashboardService(repo, zerolog.Nop())

	d, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if len(d.News) != 2 || d.News[0] != "coin jam cleared" {
		t.Fatalf("unexpected news: %v", d.News)
	}
}

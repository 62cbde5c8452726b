package service

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

const salesChartDays = 10

// defaultNews fills the news feed when no machine events exist yet.
var defaultNews = []string{
	"Service regulations have been updated.",
	"New locations launched in the business center.",
	"Scheduled inspections this week.",
}

// DashboardService assembles the aggregate numbers for the main page.
type DashboardService struct {
	repo ports.DashboardRepository
	log  zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, log: log}
}

func (s *DashboardService) Overview(ctx context.Context) (*ports.Dashboard, error) {
	counts, err := s.repo.MachineStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	efficiency := 0
	if counts.Total > 0 {
		efficiency = int(math.Round(float64(counts.Working) * 100 / float64(counts.Total)))
	}

	salesTotal, err := s.repo.SalesTotal(ctx)
	if err != nil {
		return nil, err
	}
	cashTotal, err := s.repo.CashIncomeTotal(ctx)
	if err != nil {
		return nil, err
	}
	maintenance, err := s.repo.MaintenanceCount(ctx)
	if err != nil {
		return nil, err
	}

	points, err := s.salesChart(ctx)
	if err != nil {
		return nil, err
	}

	news, err := s.repo.LatestEventMessages(ctx, 3)
	if err != nil {
		return nil, err
	}
	if len(news) == 0 {
		news = defaultNews
	}

	return &ports.Dashboard{
		EfficiencyPercent: efficiency,
		WorkingCount:      counts.Working,
		OfflineCount:      counts.Offline,
		ServiceCount:      counts.Service,
		SalesTotal:        salesTotal,
		CashTotal:         cashTotal,
		MaintenanceTotal:  maintenance,
		SalesPoints:       points,
		News:              news,
	}, nil
}

// salesChart builds a fixed window of the last salesChartDays days, zero
// filling days without sales so the chart axis is stable.
func (s *DashboardService) salesChart(ctx context.Context) ([]ports.SalesPoint, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(salesChartDays - 1))

	byDay, err := s.repo.SalesByDay(ctx, start)
	if err != nil {
		return nil, err
	}

	sums := make(map[time.Time]ports.DailySales, len(byDay))
	for _, d := range byDay {
		sums[d.Day.UTC().Truncate(24*time.Hour)] = d
	}

	points := make([]ports.SalesPoint, 0, salesChartDays)
	for i := 0; i < salesChartDays; i++ {
		day := start.AddDate(0, 0, i)
		p := ports.SalesPoint{Day: day.Format("02.01")}
		if d, ok := sums[day]; ok {
			p.Sum = d.Sum
			p.Count = d.Count
		}
		points = append(points, p)
	}
	return points, nil
}

package ports

import (
	"context"
	"time"
)

// StatusCounts groups machines by broad operational state, derived from
// status-name patterns in the reference table.
type StatusCounts struct {
	Total   int
	Working int
	Offline int
	Service int
}

// DailySales is one aggregated day of sales.
type DailySales struct {
	Day   time.Time
	Sum   float64
	Count int
}

// DashboardRepository provides the aggregate queries behind the dashboard.
type DashboardRepository interface {
	MachineStatusCounts(ctx context.Context) (StatusCounts, error)
	SalesTotal(ctx context.Context) (float64, error)
	CashIncomeTotal(ctx context.Context) (float64, error)
	MaintenanceCount(ctx context.Context) (int, error)
	// SalesByDay aggregates sales per calendar day from the given date on.
	SalesByDay(ctx context.Context, from time.Time) ([]DailySales, error)
	// LatestEventMessages returns up to limit newest non-blank event texts.
	LatestEventMessages(ctx context.Context, limit int) ([]string, error)
}

// SalesPoint is one day of the dashboard sales chart.
type SalesPoint struct {
	Day   string // dd.MM label
	Sum   float64
	Count int
}

// Dashboard is the aggregate response for the main page.
type Dashboard struct {
	EfficiencyPercent int
	WorkingCount      int
	OfflineCount      int
	ServiceCount      int
	SalesTotal        float64
	CashTotal         float64
	MaintenanceTotal  int
	SalesPoints       []SalesPoint
	News              []string
}

// DashboardService assembles the dashboard aggregates.
type DashboardService interface {
	Overview(ctx context.Context) (*Dashboard, error)
}

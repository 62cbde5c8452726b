package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vwsr/fleet-api/internal/core/ports"
)

// DashboardRepository runs the aggregate queries behind the main page.
// Machines are bucketed by status-name patterns from the reference table.
type DashboardRepository struct {
	db *sql.DB
}

func NewDashboardRepository(db *sql.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) MachineStatusCounts(ctx context.Context) (ports.StatusCounts, error) {
	var c ports.StatusCounts
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(s.name LIKE '%Operational%'), 0),
		       COALESCE(SUM(s.name LIKE '%Offline%' OR s.name LIKE '%Out of service%'), 0),
		       COALESCE(SUM(s.name LIKE '%repair%' OR s.name LIKE '%mainten%'), 0)
		FROM vending_machine vm
		JOIN vending_machine_status s ON s.vending_machine_status_id = vm.vending_machine_status_id`).
		Scan(&c.Total, &c.Working, &c.Offline, &c.Service)
	if err != nil {
		return ports.StatusCounts{}, fmt.Errorf("machine status counts: %w", err)
	}
	return c, nil
}

func (r *DashboardRepository) SalesTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_amount), 0) FROM sale").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sales total: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) CashIncomeTotal(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_income), 0) FROM vending_machine_income").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("cash income total: %w", err)
	}
	return total, nil
}

func (r *DashboardRepository) MaintenanceCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM maintenance").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("maintenance count: %w", err)
	}
	return count, nil
}

func (r *DashboardRepository) SalesByDay(ctx context.Context, from time.Time) ([]ports.DailySales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DATE(sold_at), COALESCE(SUM(total_amount), 0), COALESCE(SUM(quantity), 0)
		FROM sale
		WHERE sold_at >= ?
		GROUP BY DATE(sold_at)`, from)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()

	var days []ports.DailySales
	for rows.Next() {
		var d ports.DailySales
		if err := rows.Scan(&d.Day, &d.Sum, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *DashboardRepository) LatestEventMessages(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT message
		FROM vending_machine_event
		WHERE message IS NOT NULL AND TRIM(message) <> ''
		ORDER BY occurred_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("latest events: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scan event message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

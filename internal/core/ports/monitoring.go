package ports

import (
	"context"
	"time"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// StatusGenerator fabricates display-only telemetry for a machine. It sits
// behind this interface so a real telemetry feed can replace it without
// touching the monitoring workflow.
type StatusGenerator interface {
	Generate(machineID int64) domain.GeneratedStatus
}

// MonitoringRepository provides the joined machine rows for the monitoring view.
type MonitoringRepository interface {
	MachineOverviews(ctx context.Context) ([]domain.MachineOverview, error)
}

// MonitoringFilter narrows the monitoring list. ConnectionTypeID is the raw
// query value; a non-numeric, non-empty value is a bad request.
type MonitoringFilter struct {
	Status           string
	ConnectionTypeID string
	AdditionalStatus string
}

// MonitoringItem is one machine row of the monitoring view, combining stored
// data with generated status fields.
type MonitoringItem struct {
	ID               string // external machine id
	Name             string
	Provider         string
	Status           string
	CheckedAt        time.Time
	TotalIncome      float64
	ConnectionState  string
	CashInMachine    float64
	LastEvent        string
	Equipment        string
	InfoStatus       string
	AdditionalStatus string
	LoadItems        int
}

// MonitoringService produces the monitoring view.
type MonitoringService interface {
	Machines(ctx context.Context, filter MonitoringFilter) ([]MonitoringItem, error)
}

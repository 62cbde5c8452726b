package domain

import "github.com/google/uuid"

// GeneratedStatus carries the display-only telemetry fields fabricated by the
// status generator. None of it is persisted or read from real devices.
type GeneratedStatus struct {
	ConnectionState string
	CashInMachine   float64
	InfoStatus      string
	Additional      string
	LoadItems       int
}

// MachineOverview is the monitoring join: a machine with its status, modem
// provider, latest event and installed equipment.
type MachineOverview struct {
	MachineID        int64
	ExternalID       uuid.UUID
	Name             string
	StatusName       string
	ProviderName     string // "-" when no modem is linked
	ConnectionTypeID *int64
	LastEventMessage string // "-" when no events were recorded
	Equipment        string // comma-joined equipment type names, "-" when empty
	TotalIncome      float64
}

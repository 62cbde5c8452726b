package service

import (
	"math/rand"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

var (
	connectionStates = []string{"Online", "Online", "Online", "Unstable", "Offline"}
	infoStatuses     = []string{"OK", "OK", "Attention", "Error"}
	additionalTags   = []string{"None", "Low stock", "Cash collection due", "Sanitation due"}
)

// StatusGenerator fabricates pseudo-telemetry for the monitoring view. The
// random source is seeded with the machine id, so the same id always yields
// the same values within a binary. It is a presentation stub: nothing here is
// persisted or read back from devices.
type StatusGenerator struct{}

func NewStatusGenerator() *StatusGenerator {
	return &StatusGenerator{}
}

func (g *StatusGenerator) Generate(machineID int64) domain.GeneratedStatus {
	r := rand.New(rand.NewSource(machineID))
	return domain.GeneratedStatus{
		ConnectionState: connectionStates[r.Intn(len(connectionStates))],
		CashInMachine:   float64(500+r.Intn(19500)) + float64(r.Intn(100))/100,
		InfoStatus:      infoStatuses[r.Intn(len(infoStatuses))],
		Additional:      additionalTags[r.Intn(len(additionalTags))],
		LoadItems:       40 + r.Intn(61),
	}
}

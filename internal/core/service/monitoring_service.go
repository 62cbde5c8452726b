package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// MonitoringService builds the monitoring view: stored machine rows enriched
// with generated status fields and narrowed by the caller's filters.
type MonitoringService struct {
	repo      ports.MonitoringRepository
	generator ports.StatusGenerator
	log       zerolog.Logger
}

func NewMonitoringService(repo ports.MonitoringRepository, generator ports.StatusGenerator, log zerolog.Logger) *MonitoringService {
	return &MonitoringService{repo: repo, generator: generator, log: log}
}

func (s *MonitoringService) Machines(ctx context.Context, filter ports.MonitoringFilter) ([]ports.MonitoringItem, error) {
	var connectionTypeID *int64
	if strings.TrimSpace(filter.ConnectionTypeID) != "" {
		parsed, err := strconv.ParseInt(filter.ConnectionTypeID, 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidConnectionType
		}
		connectionTypeID = &parsed
	}

	overviews, err := s.repo.MachineOverviews(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]ports.MonitoringItem, 0, len(overviews))
	for _, ov := range overviews {
		if filter.Status != "" && !strings.EqualFold(ov.StatusName, filter.Status) {
			continue
		}
		if connectionTypeID != nil && (ov.ConnectionTypeID == nil || *ov.ConnectionTypeID != *connectionTypeID) {
			continue
		}

		generated := s.generator.Generate(ov.MachineID)
		if filter.AdditionalStatus != "" && !strings.EqualFold(generated.Additional, filter.AdditionalStatus) {
			continue
		}

		items = append(items, ports.MonitoringItem{
			ID:               ov.ExternalID.String(),
			Name:             ov.Name,
			Provider:         ov.ProviderName,
			Status:           ov.StatusName,
			CheckedAt:        now,
			TotalIncome:      ov.TotalIncome,
			ConnectionState:  generated.ConnectionState,
			CashInMachine:    generated.CashInMachine,
			LastEvent:        ov.LastEventMessage,
			Equipment:        ov.Equipment,
			InfoStatus:       generated.InfoStatus,
			AdditionalStatus: generated.Additional,
			LoadItems:        generated.LoadItems,
		})
	}
	return items, nil
}

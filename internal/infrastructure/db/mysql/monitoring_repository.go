package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// MonitoringRepository reads the joined machine rows for the monitoring view.
type MonitoringRepository struct {
	db *sql.DB
}

func NewMonitoringRepository(db *sql.DB) *MonitoringRepository {
	return &MonitoringRepository{db: db}
}

func (r *MonitoringRepository) MachineOverviews(ctx context.Context) ([]domain.MachineOverview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vm.vending_machine_id,
		       vm.external_id,
		       CONCAT(m.name, ' / ', vm.place),
		       s.name,
		       COALESCE(p.name, '-'),
		       mo.connection_type_id,
		       COALESCE(
		           (SELECT e.message FROM vending_machine_event e
		            WHERE e.vending_machine_id = vm.vending_machine_id
		            ORDER BY e.occurred_at DESC LIMIT 1),
		           '-'),
		       COALESCE(
		           (SELECT GROUP_CONCAT(et.name SEPARATOR ', ')
		            FROM vending_machine_equipment vme
		            JOIN equipment_type et ON et.equipment_type_id = vme.equipment_type_id
		            WHERE vme.vending_machine_id = vm.vending_machine_id),
		           '-'),
		       COALESCE(
		           (SELECT SUM(i.total_income) FROM vending_machine_income i
		            WHERE i.vending_machine_id = vm.vending_machine_id),
		           0)
		FROM vending_machine vm
		JOIN vending_machine_model m ON m.vending_machine_model_id = vm.vending_machine_model_id
		JOIN vending_machine_status s ON s.vending_machine_status_id = vm.vending_machine_status_id
		LEFT JOIN modem mo ON mo.modem_id = vm.modem_id
		LEFT JOIN modem_provider p ON p.modem_provider_id = mo.modem_provider_id
		ORDER BY vm.vending_machine_id`)
	if err != nil {
		return nil, fmt.Errorf("monitoring overviews: %w", err)
	}
	defer rows.Close()

	var overviews []domain.MachineOverview
	for rows.Next() {
		var (
			o          domain.MachineOverview
			externalID string
			connType   sql.NullInt64
		)
		if err := rows.Scan(&o.MachineID, &externalID, &o.Name, &o.StatusName,
			&o.ProviderName, &connType, &o.LastEventMessage, &o.Equipment, &o.TotalIncome); err != nil {
			return nil, fmt.Errorf("scan overview: %w", err)
		}
		if o.ExternalID, err = uuid.Parse(externalID); err != nil {
			return nil, fmt.Errorf("parse machine external id: %w", err)
		}
		if connType.Valid {
			o.ConnectionTypeID = &connType.Int64
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}

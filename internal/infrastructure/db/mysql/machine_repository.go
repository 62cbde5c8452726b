package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// MachineRepository persists vending machines. Machines carry an internal
// numeric key plus a UUID external id used by the API.
type MachineRepository struct {
	db *sql.DB
}

func NewMachineRepository(db *sql.DB) *MachineRepository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) List(ctx context.Context, filter ports.ListMachinesFilter) ([]domain.MachineListRow, int, error) {
	where := ""
	args := []any{}
	if filter.Search != "" {
		where = "WHERE vm.name LIKE ?"
		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM vending_machine vm " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count machines: %w", err)
	}

	query := `
		SELECT vm.external_id, vm.name, m.name, c.name, COALESCE(vm.modem_id, -1),
		       vm.address, vm.place, vm.commissioning_date
		FROM vending_machine vm
		JOIN vending_machine_model m ON m.vending_machine_model_id = vm.vending_machine_model_id
		LEFT JOIN company c ON c.company_id = vm.company_id
		` + where + `
		ORDER BY vm.vending_machine_id
		LIMIT ? OFFSET ?`
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list machines: %w", err)
	}
	defer rows.Close()

	var items []domain.MachineListRow
	for rows.Next() {
		var (
			item       domain.MachineListRow
			externalID string
			company    sql.NullString
		)
		if err := rows.Scan(&externalID, &item.Name, &item.ModelName, &company,
			&item.ModemID, &item.Address, &item.Place, &item.CommissioningDate); err != nil {
			return nil, 0, fmt.Errorf("scan machine row: %w", err)
		}
		if item.ExternalID, err = uuid.Parse(externalID); err != nil {
			return nil, 0, fmt.Errorf("parse machine external id: %w", err)
		}
		if company.Valid {
			item.CompanyName = &company.String
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *MachineRepository) FindByExternalID(ctx context.Context, id uuid.UUID) (*domain.Machine, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT vending_machine_id, external_id, name, vending_machine_model_id,
		       vending_machine_status_id, company_id, modem_id, address, place,
		       inventory_number, serial_number, manufacture_date, commissioning_date,
		       next_service_date, notes, created_at
		FROM vending_machine
		WHERE external_id = ?
		LIMIT 1`, id.String())

	var (
		m          domain.Machine
		externalID string
		companyID  sql.NullInt64
		modemID    sql.NullInt64
		nextDate   sql.NullTime
		notes      sql.NullString
	)
	err := row.Scan(&m.ID, &externalID, &m.Name, &m.ModelID, &m.StatusID,
		&companyID, &modemID, &m.Address, &m.Place, &m.InventoryNumber, &m.SerialNumber,
		&m.ManufactureDate, &m.CommissioningDate, &nextDate, &notes, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMachineNotFound
		}
		return nil, fmt.Errorf("find machine: %w", err)
	}
	if m.ExternalID, err = uuid.Parse(externalID); err != nil {
		return nil, fmt.Errorf("parse machine external id: %w", err)
	}
	if companyID.Valid {
		m.CompanyID = &companyID.Int64
	}
	if modemID.Valid {
		m.ModemID = &modemID.Int64
	}
	if nextDate.Valid {
		m.NextServiceDate = &nextDate.Time
	}
	m.Notes = notes.String
	return &m, nil
}

func (r *MachineRepository) Create(ctx context.Context, m *domain.Machine) error {
	if err := r.checkUnique(ctx, m.SerialNumber, m.InventoryNumber, 0); err != nil {
		return err
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO vending_machine
			(external_id, name, vending_machine_model_id, vending_machine_status_id,
			 company_id, modem_id, address, place, inventory_number, serial_number,
			 manufacture_date, commissioning_date, next_service_date, notes, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ExternalID.String(), m.Name, m.ModelID, m.StatusID,
		m.CompanyID, m.ModemID, m.Address, m.Place, m.InventoryNumber, m.SerialNumber,
		m.ManufactureDate, m.CommissioningDate, m.NextServiceDate, m.Notes, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert machine: %w", err)
	}
	return nil
}

func (r *MachineRepository) Update(ctx context.Context, m *domain.Machine) error {
	internalID, err := r.internalID(ctx, m.ExternalID)
	if err != nil {
		return err
	}
	if err := r.checkUnique(ctx, m.SerialNumber, m.InventoryNumber, internalID); err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE vending_machine SET
			name = ?, vending_machine_model_id = ?, vending_machine_status_id = ?,
			company_id = ?, modem_id = ?, address = ?, place = ?,
			inventory_number = ?, serial_number = ?, manufacture_date = ?,
			commissioning_date = ?, next_service_date = ?, notes = ?
		WHERE vending_machine_id = ?`,
		m.Name, m.ModelID, m.StatusID,
		m.CompanyID, m.ModemID, m.Address, m.Place,
		m.InventoryNumber, m.SerialNumber, m.ManufactureDate,
		m.CommissioningDate, m.NextServiceDate, m.Notes, internalID)
	if err != nil {
		return fmt.Errorf("update machine: %w", err)
	}
	return nil
}

func (r *MachineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM vending_machine WHERE external_id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete machine: %w", err)
	}
	return requireAffected(res, domain.ErrMachineNotFound)
}

func (r *MachineRepository) UnlinkModem(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE vending_machine SET modem_id = NULL WHERE external_id = ?", id.String())
	if err != nil {
		return fmt.Errorf("unlink modem: %w", err)
	}
	return requireAffected(res, domain.ErrMachineNotFound)
}

// checkUnique enforces serial/inventory uniqueness, excluding the machine
// itself on update (excludeID = 0 on create).
func (r *MachineRepository) checkUnique(ctx context.Context, serial, inventory string, excludeID int64) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM vending_machine WHERE serial_number = ? AND vending_machine_id <> ?)",
		serial, excludeID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check serial number: %w", err)
	}
	if exists {
		return domain.ErrDuplicateSerialNumber
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM vending_machine WHERE inventory_number = ? AND vending_machine_id <> ?)",
		inventory, excludeID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check inventory number: %w", err)
	}
	if exists {
		return domain.ErrDuplicateInventoryNumber
	}
	return nil
}

func (r *MachineRepository) internalID(ctx context.Context, externalID uuid.UUID) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT vending_machine_id FROM vending_machine WHERE external_id = ? LIMIT 1",
		externalID.String()).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrMachineNotFound
		}
		return 0, fmt.Errorf("resolve machine id: %w", err)
	}
	return id, nil
}

// requireAffected maps a zero row count to the missing sentinel. The DSN
// enables clientFoundRows, so a no-op update still counts the matched row.
func requireAffected(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}

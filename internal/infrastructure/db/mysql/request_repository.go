package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// RequestRepository persists service requests and their append-only status
// history.
type RequestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const cardQuery = `
	SELECT r.service_request_id, vm.name, t.name, s.name, r.planned_date, COALESCE(vm.address, '')
	FROM service_request r
	JOIN vending_machine vm ON vm.vending_machine_id = r.vending_machine_id
	JOIN service_request_type t ON t.service_request_type_id = r.service_request_type_id
	JOIN service_request_status s ON s.service_request_status_id = r.service_request_status_id`

func (r *RequestRepository) ListForAccount(ctx context.Context, accountID int64) ([]ports.RequestCard, error) {
	rows, err := r.db.QueryContext(ctx, cardQuery+`
		WHERE r.assigned_user_account_id = ? OR r.assigned_user_account_id IS NULL
		ORDER BY r.planned_date, r.service_request_id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list requests for account: %w", err)
	}
	return scanCards(rows)
}

func (r *RequestRepository) ListAll(ctx context.Context, limit int) ([]ports.RequestCard, error) {
	rows, err := r.db.QueryContext(ctx, cardQuery+`
		ORDER BY r.planned_date, r.service_request_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list all requests: %w", err)
	}
	return scanCards(rows)
}

func scanCards(rows *sql.Rows) ([]ports.RequestCard, error) {
	defer rows.Close()
	var cards []ports.RequestCard
	for rows.Next() {
		var c ports.RequestCard
		if err := rows.Scan(&c.ID, &c.MachineName, &c.ServiceType, &c.Status, &c.PlannedDate, &c.Address); err != nil {
			return nil, fmt.Errorf("scan request card: %w", err)
		}
		c.Number = domain.RequestNumber(c.ID)
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (r *RequestRepository) FindByID(ctx context.Context, id int64) (*ports.RequestDetail, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT r.service_request_id, s.name, t.name, r.planned_date,
		       COALESCE(r.notes, ''), r.decline_reason, r.assigned_user_account_id, r.created_at,
		       vm.name, COALESCE(vm.address, ''), COALESCE(vm.place, ''),
		       vm.serial_number, vm.inventory_number
		FROM service_request r
		JOIN service_request_status s ON s.service_request_status_id = r.service_request_status_id
		JOIN service_request_type t ON t.service_request_type_id = r.service_request_type_id
		JOIN vending_machine vm ON vm.vending_machine_id = r.vending_machine_id
		WHERE r.service_request_id = ?
		LIMIT 1`, id)

	var (
		d        ports.RequestDetail
		reason   sql.NullString
		assigned sql.NullInt64
	)
	err := row.Scan(&d.ID, &d.Status, &d.ServiceType, &d.PlannedDate,
		&d.Notes, &reason, &assigned, &d.CreatedAt,
		&d.MachineName, &d.Address, &d.Place, &d.SerialNumber, &d.InventoryNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	d.Number = domain.RequestNumber(d.ID)
	if reason.Valid {
		d.DeclineReason = &reason.String
	}
	if assigned.Valid {
		d.Assignment = domain.AssignedTo(assigned.Int64)
	}
	return &d, nil
}

func (r *RequestRepository) History(ctx context.Context, id int64) ([]domain.StatusHistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.name, h.changed_at,
		       TRIM(CONCAT_WS(' ', NULLIF(a.last_name, ''), NULLIF(a.first_name, ''), NULLIF(a.patronymic, '')))
		FROM service_request_status_history h
		JOIN service_request_status s ON s.service_request_status_id = h.service_request_status_id
		JOIN user_account a ON a.user_account_id = h.changed_by_user_account_id
		WHERE h.service_request_id = ?
		ORDER BY h.changed_at DESC`, id)
	if err != nil {
		return nil, fmt.Errorf("request history: %w", err)
	}
	defer rows.Close()

	var entries []domain.StatusHistoryEntry
	for rows.Next() {
		var e domain.StatusHistoryEntry
		if err := rows.Scan(&e.Status, &e.ChangedAt, &e.ChangedBy); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *RequestRepository) StatusIDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		"SELECT service_request_status_id FROM service_request_status WHERE name = ? LIMIT 1",
		name).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrStatusNotConfigured
		}
		return 0, fmt.Errorf("resolve status %q: %w", name, err)
	}
	return id, nil
}

// Apply runs the accept/decline transition as one transaction. The request
// row is locked with FOR UPDATE so the assignment check and the update are a
// single atomic step: two concurrent claims of the same unassigned request
// serialize on the lock and the loser fails the guard.
func (r *RequestRepository) Apply(ctx context.Context, t ports.Transition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var assigned sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT assigned_user_account_id FROM service_request WHERE service_request_id = ? FOR UPDATE",
		t.RequestID).Scan(&assigned)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRequestNotFound
		}
		return fmt.Errorf("lock request: %w", err)
	}
	if assigned.Valid && assigned.Int64 != t.ActorID {
		return domain.ErrForbidden
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE service_request
		SET service_request_status_id = ?, assigned_user_account_id = ?, decline_reason = ?
		WHERE service_request_id = ?`,
		t.StatusID, t.ActorID, t.DeclineReason, t.RequestID)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO service_request_status_history
			(service_request_id, service_request_status_id, changed_by_user_account_id, changed_at)
		VALUES (?,?,?,?)`,
		t.RequestID, t.StatusID, t.ActorID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return tx.Commit()
}

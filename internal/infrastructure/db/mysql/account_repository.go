package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// AccountRepository reads accounts from the user_account table.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `a.user_account_id, a.email, a.password_hash, r.name,
	a.first_name, a.last_name, a.patronymic, a.photo_url, a.is_active, a.company_id, a.created_at`

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM user_account a
		JOIN user_role r ON r.user_role_id = a.user_role_id
		WHERE a.email = ?
		LIMIT 1`, email)
	return scanAccount(row)
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM user_account a
		JOIN user_role r ON r.user_role_id = a.user_role_id
		WHERE a.user_account_id = ?
		LIMIT 1`, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		a          domain.Account
		patronymic sql.NullString
		photoURL   sql.NullString
		companyID  sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role,
		&a.FirstName, &a.LastName, &patronymic, &photoURL, &a.IsActive, &companyID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	a.Patronymic = patronymic.String
	a.PhotoURL = photoURL.String
	if companyID.Valid {
		a.CompanyID = &companyID.Int64
	}
	return &a, nil
}

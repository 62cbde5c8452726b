package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// CompanyRepository persists companies.
type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) List(ctx context.Context, search string) ([]domain.Company, error) {
	query := `
		SELECT company_id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''), created_at
		FROM company`
	args := []any{}
	if search != "" {
		query += " WHERE name LIKE ?"
		args = append(args, "%"+search+"%")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*domain.Company, error) {
	var c domain.Company
	err := r.db.QueryRowContext(ctx, `
		SELECT company_id, name, COALESCE(phone, ''), COALESCE(email, ''), COALESCE(address, ''), created_at
		FROM company
		WHERE company_id = ?
		LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return &c, nil
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) (int64, error) {
	if err := r.checkName(ctx, c.Name, 0); err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx,
		"INSERT INTO company (name, phone, email, address, created_at) VALUES (?,?,?,?,?)",
		c.Name, c.Phone, c.Email, c.Address, c.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert company: %w", err)
	}
	return res.LastInsertId()
}

func (r *CompanyRepository) Update(ctx context.Context, c *domain.Company) error {
	if err := r.checkName(ctx, c.Name, c.ID); err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE company SET name = ?, phone = ?, email = ?, address = ? WHERE company_id = ?",
		c.Name, c.Phone, c.Email, c.Address, c.ID)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return requireAffected(res, domain.ErrCompanyNotFound)
}

// Delete refuses to drop a company that still owns machines or accounts.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	var linked bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM vending_machine WHERE company_id = ?)
		    OR EXISTS(SELECT 1 FROM user_account WHERE company_id = ?)`,
		id, id).Scan(&linked)
	if err != nil {
		return fmt.Errorf("check company links: %w", err)
	}
	if linked {
		return domain.ErrCompanyInUse
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM company WHERE company_id = ?", id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return requireAffected(res, domain.ErrCompanyNotFound)
}

func (r *CompanyRepository) checkName(ctx context.Context, name string, excludeID int64) error {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM company WHERE name = ? AND company_id <> ?)",
		name, excludeID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check company name: %w", err)
	}
	if exists {
		return domain.ErrCompanyExists
	}
	return nil
}

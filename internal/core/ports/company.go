package ports

import (
	"context"

	"github.com/vwsr/fleet-api/internal/core/domain"
)

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	// List returns companies ordered by name, optionally filtered by a
	// partial name match.
	List(ctx context.Context, search string) ([]domain.Company, error)
	FindByID(ctx context.Context, id int64) (*domain.Company, error)
	// Create persists the company; a duplicate name surfaces as
	// domain.ErrCompanyExists.
	Create(ctx context.Context, c *domain.Company) (int64, error)
	Update(ctx context.Context, c *domain.Company) error
	// Delete removes the company. When machines or accounts still reference
	// it the call fails with domain.ErrCompanyInUse.
	Delete(ctx context.Context, id int64) error
}

// CompanyInput carries the writable company fields.
type CompanyInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// CompanyService defines use-case operations for companies.
type CompanyService interface {
	List(ctx context.Context, search string) ([]domain.Company, error)
	Get(ctx context.Context, id int64) (*domain.Company, error)
	Create(ctx context.Context, input CompanyInput) (int64, error)
	Update(ctx context.Context, id int64, input CompanyInput) error
	Delete(ctx context.Context, id int64) error
}

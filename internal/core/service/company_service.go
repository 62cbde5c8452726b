package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vwsr/fleet-api/internal/core/domain"
	"github.com/vwsr/fleet-api/internal/core/ports"
)

// CompanyService is the CRUD layer over companies.
type CompanyService struct {
	repo ports.CompanyRepository
	log  zerolog.Logger
}

func NewCompanyService(repo ports.CompanyRepository, log zerolog.Logger) *CompanyService {
	return &CompanyService{repo: repo, log: log}
}

func (s *CompanyService) List(ctx context.Context, search string) ([]domain.Company, error) {
	return s.repo.List(ctx, search)
}

func (s *CompanyService) Get(ctx context.Context, id int64) (*domain.Company, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, input ports.CompanyInput) (int64, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return 0, domain.ErrCompanyNameRequired
	}

	id, err := s.repo.Create(ctx, &domain.Company{
		Name:      name,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}

	s.log.Info().Int64("company_id", id).Str("name", name).Msg("company created")
	return id, nil
}

func (s *CompanyService) Update(ctx context.Context, id int64, input ports.CompanyInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.ErrCompanyNameRequired
	}
	return s.repo.Update(ctx, &domain.Company{
		ID:      id,
		Name:    name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	})
}

func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

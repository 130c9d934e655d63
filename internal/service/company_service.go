package service

import (
	"context"
	"strings"

	"github.com/spec-kit/training-service/internal/activity"
	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// CompanyService manages tenant companies. Creation and deletion are
// super-admin operations; the policy layer enforces that before calls
// reach here.
type CompanyService struct {
	companies  repository.CompanyRepository
	activities *activity.Logger
}

// NewCompanyService builds the service.
func NewCompanyService(companies repository.CompanyRepository, activities *activity.Logger) *CompanyService {
	return &CompanyService{companies: companies, activities: activities}
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, actor *auth.Principal, name, logoPath string) (*domain.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorutil.NewValidationError("company name is required", nil)
	}
	company := &domain.Company{Name: name, LogoPath: logoPath}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.activities.Log(ctx, activity.Entry{
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		Action:       domain.ActionCreate,
		Description:  "Created company '" + company.Name + "'.",
		CompanyID:    &company.ID,
	})
	return company, nil
}

// Update edits a company's name and logo.
func (s *CompanyService) Update(ctx context.Context, actor *auth.Principal, id, name, logoPath string) (*domain.Company, error) {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errorutil.NewValidationError("company name is required", nil)
	}
	company.Name = name
	if logoPath != "" {
		company.LogoPath = logoPath
	}
	if err := s.companies.Update(ctx, company); err != nil {
		return nil, errorutil.MapError(err)
	}
	s.activities.Log(ctx, activity.Entry{
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		Action:       domain.ActionUpdate,
		Description:  "Updated company '" + company.Name + "'.",
		CompanyID:    &company.ID,
	})
	return company, nil
}

// Delete removes a company and everything owned by it.
func (s *CompanyService) Delete(ctx context.Context, actor *auth.Principal, id string) error {
	company, err := s.companies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}
	s.activities.Log(ctx, activity.Entry{
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		Action:       domain.ActionDelete,
		Description:  "Deleted company '" + company.Name + "'.",
	})
	return nil
}

// Get returns one company.
func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

// List returns all companies.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

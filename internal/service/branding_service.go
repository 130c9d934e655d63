package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// BrandingService manages the install-wide branding profile and the
// onboarding checklist.
type BrandingService struct {
	branding repository.BrandingRepository
}

// NewBrandingService builds the service.
func NewBrandingService(branding repository.BrandingRepository) *BrandingService {
	return &BrandingService{branding: branding}
}

// BrandingInput describes an update to the branding profile.
type BrandingInput struct {
	DisplayName  string
	LogoPath     string
	SupportEmail string
}

// Profile returns the branding profile, or nil when none is configured.
func (s *BrandingService) Profile(ctx context.Context) (*domain.CompanyProfile, error) {
	profile, err := s.branding.GetProfile(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

// SaveProfile creates or updates the branding profile.
func (s *BrandingService) SaveProfile(ctx context.Context, _ *auth.Principal, input BrandingInput) (*domain.CompanyProfile, error) {
	name := strings.TrimSpace(input.DisplayName)
	if name == "" {
		return nil, errorutil.NewValidationError("display name is required", nil)
	}
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &domain.CompanyProfile{}
	}
	profile.DisplayName = name
	profile.SupportEmail = strings.TrimSpace(input.SupportEmail)
	if input.LogoPath != "" {
		profile.LogoPath = input.LogoPath
	}
	if err := s.branding.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveLogo records the stored logo path on the branding profile. The
// profile must exist first so the logo is never orphaned from a display
// name.
func (s *BrandingService) SaveLogo(ctx context.Context, path string) (*domain.CompanyProfile, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errorutil.NewValidationError("configure the company profile before uploading a logo", nil)
	}
	profile.LogoPath = path
	if err := s.branding.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Checklist returns the onboarding checklist items.
func (s *BrandingService) Checklist(ctx context.Context) ([]domain.ChecklistItem, error) {
	return s.branding.ListChecklist(ctx)
}

// SetChecklistDone toggles a checklist item.
func (s *BrandingService) SetChecklistDone(ctx context.Context, id string, done bool) error {
	return s.branding.SetChecklistDone(ctx, id, done)
}

package dto

import (
	"time"

	"github.com/spec-kit/training-service/internal/domain"
)

// BrandingRequest payload for the install branding profile.
type BrandingRequest struct {
	DisplayName  string `json:"display_name" validate:"required,max=255"`
	LogoPath     string `json:"logo_path" validate:"max=500"`
	SupportEmail string `json:"support_email" validate:"omitempty,email"`
}

// BrandingResponse is the branding profile.
type BrandingResponse struct {
	DisplayName  string    `json:"display_name"`
	LogoPath     string    `json:"logo_path,omitempty"`
	SupportEmail string    `json:"support_email,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewBrandingResponse maps the profile.
func NewBrandingResponse(p domain.CompanyProfile) BrandingResponse {
	return BrandingResponse{
		DisplayName:  p.DisplayName,
		LogoPath:     p.LogoPath,
		SupportEmail: p.SupportEmail,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ChecklistItemResponse is one onboarding task.
type ChecklistItemResponse struct {
	ID     string     `json:"id"`
	Task   string     `json:"task"`
	Done   bool       `json:"done"`
	DoneAt *time.Time `json:"done_at,omitempty"`
}

// ChecklistToggleRequest payload for toggling a checklist item.
type ChecklistToggleRequest struct {
	Done bool `json:"done"`
}

// NewChecklistResponse maps the checklist.
func NewChecklistResponse(items []domain.ChecklistItem) []ChecklistItemResponse {
	out := make([]ChecklistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ChecklistItemResponse{
			ID:     item.ID,
			Task:   item.Task,
			Done:   item.Done,
			DoneAt: item.DoneAt,
		})
	}
	return out
}

// InviteAdminRequest payload for inviting a company admin.
type InviteAdminRequest struct {
	Email     string `json:"email" validate:"required,email"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// AcceptInviteRequest payload for redeeming an invitation token.
type AcceptInviteRequest struct {
	Token     string `json:"token" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Password  string `json:"password" validate:"required,min=8"`
}

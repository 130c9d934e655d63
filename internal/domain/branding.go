package domain

import "time"

// CompanyProfile is the singleton branding record for the install.
type CompanyProfile struct {
	ID           string
	DisplayName  string
	LogoPath     string
	SupportEmail string
	UpdatedAt    time.Time
}

// ChecklistItem is one onboarding task in the setup checklist.
type ChecklistItem struct {
	ID     string
	Task   string
	Done   bool
	DoneAt *time.Time
}

// AdminInvite is a tokened invitation for a company administrator.
type AdminInvite struct {
	ID         string
	Email      string
	CompanyID  string
	Token      string
	InvitedBy  string
	ExpiresAt  time.Time
	AcceptedAt *time.Time
	CreatedAt  time.Time
}

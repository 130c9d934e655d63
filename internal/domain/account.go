package domain

import "time"

// Role enumerates company-scoped roles. Super-admin status is a separate
// flag on the account and is orthogonal to Role.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// ValidRole reports whether r is one of the known company roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// Account is a login-capable identity.
type Account struct {
	ID           string
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	IsSuperAdmin bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns "First Last", falling back to the username when both
// name parts are empty.
func (a Account) FullName() string {
	if a.FirstName == "" && a.LastName == "" {
		return a.Username
	}
	return a.FirstName + " " + a.LastName
}

// UserProfile attaches company membership to an account. Company,
// department and role are all optional; an account without a profile or
// with an empty profile has no company-scoped permissions.
type UserProfile struct {
	AccountID    string
	CompanyID    *string
	DepartmentID *string
	Role         *Role
}

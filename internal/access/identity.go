package access

import (
	"github.com/spec-kit/training-service/internal/domain"
)

// IdentityKind tags the resolved identity variant.
type IdentityKind int

const (
	// IdentityUnassigned covers accounts with no profile, or a profile
	// without a company or role.
	IdentityUnassigned IdentityKind = iota
	// IdentitySuperAdmin is the global staff tier. It never satisfies
	// company-scoped predicates.
	IdentitySuperAdmin
	// IdentityCompanyMember is a role scoped to exactly one company.
	IdentityCompanyMember
)

// Identity is the tagged variant resolved from an account and its
// optional profile. Resolving up front rules out contradictory states
// such as a super-admin flag combined with a stray company role.
type Identity struct {
	Kind      IdentityKind
	CompanyID string
	Role      domain.Role
}

// ResolveIdentity computes the identity for an account. The super-admin
// flag wins over any profile data.
func ResolveIdentity(account *domain.Account, profile *domain.UserProfile) Identity {
	if account == nil {
		return Identity{Kind: IdentityUnassigned}
	}
	if account.IsSuperAdmin {
		return Identity{Kind: IdentitySuperAdmin}
	}
	if profile == nil || profile.CompanyID == nil || profile.Role == nil {
		return Identity{Kind: IdentityUnassigned}
	}
	return Identity{
		Kind:      IdentityCompanyMember,
		CompanyID: *profile.CompanyID,
		Role:      *profile.Role,
	}
}

// IsSuperAdmin reports whether the account carries the global staff flag.
func IsSuperAdmin(account *domain.Account) bool {
	return account != nil && account.IsSuperAdmin
}

// RoleInCompany returns the account's role only when its profile is scoped
// to the given company. Super admins and unassigned accounts yield no role.
func RoleInCompany(account *domain.Account, profile *domain.UserProfile, companyID string) (domain.Role, bool) {
	id := ResolveIdentity(account, profile)
	if id.Kind != IdentityCompanyMember || id.CompanyID != companyID {
		return "", false
	}
	return id.Role, true
}

// IsCompanyAdmin reports whether the account is an ADMIN of companyID, or
// of its own company when companyID is empty.
func IsCompanyAdmin(account *domain.Account, profile *domain.UserProfile, companyID string) bool {
	return hasRole(account, profile, companyID, domain.RoleAdmin)
}

// IsManager reports whether the account is a MANAGER of the company.
func IsManager(account *domain.Account, profile *domain.UserProfile, companyID string) bool {
	return hasRole(account, profile, companyID, domain.RoleManager)
}

// IsEmployee reports whether the account is an EMPLOYEE of the company.
func IsEmployee(account *domain.Account, profile *domain.UserProfile, companyID string) bool {
	return hasRole(account, profile, companyID, domain.RoleEmployee)
}

func hasRole(account *domain.Account, profile *domain.UserProfile, companyID string, want domain.Role) bool {
	id := ResolveIdentity(account, profile)
	if id.Kind != IdentityCompanyMember {
		return false
	}
	if companyID == "" {
		companyID = id.CompanyID
	}
	return id.CompanyID == companyID && id.Role == want
}

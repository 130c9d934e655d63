package activity

import (
	"github.com/spec-kit/training-service/internal/domain"
)

// SystemPrefix marks entries produced with no identifiable actor.
const SystemPrefix = "[system] "

// StaffAccount is the slice of account data the resolver needs about a
// super admin: its id and optional scoping company.
type StaffAccount struct {
	AccountID string
	CompanyID *string
}

// ResolveInput carries everything the recipient computation depends on.
// The computation itself touches no storage.
type ResolveInput struct {
	// Actor performed the action; nil means a system-originated event.
	Actor        *domain.Account
	ActorCompany *string

	Description string

	// TargetUsers is the explicit fan-out set used when the actor is a
	// super admin. Empty means the actor alone.
	TargetUserIDs []string

	// EditedUser short-circuits all fan-out to exactly one recipient.
	EditedUserID      *string
	EditedUserCompany *string

	// CompanyID is the explicit company context, when the caller has one.
	CompanyID *string

	// SuperAdmins is the preloaded set of all super-admin accounts.
	SuperAdmins []StaffAccount
}

// Recipient is one activity entry to persist.
type Recipient struct {
	AccountID   string
	Description string
}

// Resolution is the outcome of the pure fan-out computation.
type Resolution struct {
	Recipients []Recipient
	CompanyID  *string
}

// ResolveRecipients computes the notification fan-out for an activity.
// It is deterministic and storage-free; persistence happens separately.
//
// Rules, in order:
//  1. An edited user receives exactly one entry; nothing else fans out.
//  2. No actor: every super admin is notified, description marked system.
//  3. Ordinary actor: super admins scoped to the actor's company plus
//     globally unscoped super admins, deduplicated.
//  4. Super-admin actor: the explicit target set (default: actor alone),
//     deduplicated.
func ResolveRecipients(in ResolveInput) Resolution {
	res := Resolution{CompanyID: resolveCompany(in)}

	if in.EditedUserID != nil {
		res.Recipients = []Recipient{{AccountID: *in.EditedUserID, Description: in.Description}}
		return res
	}

	seen := make(map[string]struct{})
	add := func(accountID, description string) {
		if _, dup := seen[accountID]; dup {
			return
		}
		seen[accountID] = struct{}{}
		res.Recipients = append(res.Recipients, Recipient{AccountID: accountID, Description: description})
	}

	if in.Actor == nil {
		for _, admin := range in.SuperAdmins {
			add(admin.AccountID, SystemPrefix+in.Description)
		}
		return res
	}

	if !in.Actor.IsSuperAdmin {
		desc := in.Actor.Username + " - " + in.Description
		for _, admin := range in.SuperAdmins {
			if admin.CompanyID == nil {
				add(admin.AccountID, desc)
				continue
			}
			if in.ActorCompany != nil && *admin.CompanyID == *in.ActorCompany {
				add(admin.AccountID, desc)
			}
		}
		return res
	}

	targets := in.TargetUserIDs
	if len(targets) == 0 {
		targets = []string{in.Actor.ID}
	}
	for _, id := range targets {
		add(id, in.Description)
	}
	return res
}

// resolveCompany picks the stored company context: explicit argument,
// else the actor's company, else the edited user's company, else none.
func resolveCompany(in ResolveInput) *string {
	if in.CompanyID != nil {
		return in.CompanyID
	}
	if in.ActorCompany != nil {
		return in.ActorCompany
	}
	return in.EditedUserCompany
}

package access

import "github.com/spec-kit/training-service/internal/domain"

// Action names an operation a handler wants to perform.
type Action string

const (
	ActionViewCompany   Action = "company.view"
	ActionCreateCompany Action = "company.create"
	ActionEditCompany   Action = "company.edit"
	ActionDeleteCompany Action = "company.delete"

	ActionViewDepartment   Action = "department.view"
	ActionCreateDepartment Action = "department.create"
	ActionEditDepartment   Action = "department.edit"
	ActionDeleteDepartment Action = "department.delete"

	ActionViewUsers  Action = "user.view"
	ActionCreateUser Action = "user.create"
	ActionEditUser   Action = "user.edit"
	ActionDeleteUser Action = "user.delete"

	ActionViewSessions   Action = "session.view"
	ActionCreateSession  Action = "session.create"
	ActionEditSession    Action = "session.edit"
	ActionDeleteSession  Action = "session.delete"
	ActionExportSessions Action = "session.export"
	ActionImportSessions Action = "session.import"

	ActionViewTopics  Action = "topic.view"
	ActionCreateTopic Action = "topic.create"
	ActionEditTopic   Action = "topic.edit"
	ActionDeleteTopic Action = "topic.delete"

	ActionInviteAdmin   Action = "admin.invite"
	ActionEditBranding  Action = "branding.edit"
	ActionViewChecklist Action = "checklist.view"
)

// Actor is the authenticated caller presented to the policy.
type Actor struct {
	Account *domain.Account
	Profile *domain.UserProfile
}

// Identity resolves the actor's identity variant.
func (a Actor) Identity() Identity {
	return ResolveIdentity(a.Account, a.Profile)
}

// Target describes the resource an action applies to. CompanyID is the
// owning company; OwnerID is the subject account for user/session targets;
// AssignRole is the role being granted on user creation or edit.
type Target struct {
	CompanyID  string
	OwnerID    string
	AssignRole domain.Role
}

// Can is the single authorization decision point consumed by every
// handler. It is a pure function and fails closed.
func Can(action Action, actor Actor, target Target) bool {
	id := actor.Identity()

	if id.Kind == IdentitySuperAdmin {
		return true
	}
	if id.Kind == IdentityUnassigned {
		return false
	}

	// Company members act only inside their own company.
	if target.CompanyID != "" && target.CompanyID != id.CompanyID {
		return false
	}

	switch action {
	case ActionCreateCompany, ActionDeleteCompany, ActionInviteAdmin:
		return false

	case ActionViewCompany:
		return true
	case ActionEditCompany, ActionEditBranding:
		return id.Role == domain.RoleAdmin

	case ActionViewDepartment, ActionViewUsers, ActionViewSessions,
		ActionViewTopics, ActionViewChecklist:
		return true

	case ActionCreateDepartment, ActionEditDepartment, ActionDeleteDepartment:
		return id.Role == domain.RoleAdmin

	case ActionCreateUser, ActionEditUser, ActionDeleteUser:
		if id.Role != domain.RoleAdmin {
			return false
		}
		// A company admin cannot grant the ADMIN role.
		return target.AssignRole != domain.RoleAdmin

	case ActionExportSessions, ActionImportSessions:
		return id.Role == domain.RoleAdmin || id.Role == domain.RoleManager

	case ActionCreateSession, ActionCreateTopic:
		return true
	case ActionEditSession, ActionDeleteSession, ActionEditTopic, ActionDeleteTopic:
		if id.Role == domain.RoleAdmin || id.Role == domain.RoleManager {
			return true
		}
		// Employees manage only what they own.
		return target.OwnerID != "" && actor.Account != nil && target.OwnerID == actor.Account.ID
	}

	return false
}

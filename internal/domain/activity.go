package domain

import "time"

// ActivityAction captures what kind of event an activity record describes.
type ActivityAction string

const (
	ActionLogin  ActivityAction = "LOGIN"
	ActionLogout ActivityAction = "LOGOUT"
	ActionCreate ActivityAction = "CREATE"
	ActionUpdate ActivityAction = "UPDATE"
	ActionDelete ActivityAction = "DELETE"
	ActionImport ActivityAction = "IMPORT"
	ActionExport ActivityAction = "EXPORT"
	ActionInvite ActivityAction = "INVITE"
)

// RecentActivity is an immutable audit/notification record delivered to
// exactly one recipient. Only the Read flag is ever updated after insert.
type RecentActivity struct {
	ID          string
	RecipientID string
	CompanyID   *string
	Action      ActivityAction
	Description string
	Details     map[string]any
	Read        bool
	CreatedAt   time.Time
}

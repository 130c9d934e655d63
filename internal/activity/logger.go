package activity

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/repository"
)

// Entry describes one activity to record. Fan-out targets are resolved
// by ResolveRecipients; the logger only persists.
type Entry struct {
	Actor         *domain.Account
	ActorCompany  *string
	Action        domain.ActivityAction
	Description   string
	TargetUserIDs []string
	EditedUser    *domain.Account
	EditedCompany *string
	CompanyID     *string
	Details       map[string]any
}

// Logger records activity entries and keeps the unread cache coherent.
// Inserts are sequential and independent; a failed insert is logged and
// skipped so partial fan-out never aborts the batch.
type Logger struct {
	accounts repository.AccountRepository
	entries  repository.ActivityRepository
	cache    *UnreadCache
	log      *zap.Logger
}

// NewLogger builds the activity logger.
func NewLogger(accounts repository.AccountRepository, entries repository.ActivityRepository, cache *UnreadCache, log *zap.Logger) *Logger {
	return &Logger{accounts: accounts, entries: entries, cache: cache, log: log}
}

// Log resolves recipients and appends one activity row per recipient.
func (l *Logger) Log(ctx context.Context, entry Entry) {
	in := ResolveInput{
		Actor:         entry.Actor,
		ActorCompany:  entry.ActorCompany,
		Description:   entry.Description,
		TargetUserIDs: entry.TargetUserIDs,
		CompanyID:     entry.CompanyID,
	}
	if entry.EditedUser != nil {
		in.EditedUserID = &entry.EditedUser.ID
		in.EditedUserCompany = entry.EditedCompany
	}

	// The super-admin set only matters for the fan-out branches.
	if entry.EditedUser == nil && (entry.Actor == nil || !entry.Actor.IsSuperAdmin) {
		admins, err := l.accounts.ListSuperAdmins(ctx)
		if err != nil {
			l.log.Error("loading super admins for activity fan-out", zap.Error(err))
			return
		}
		in.SuperAdmins = toStaffAccounts(admins)
	}

	res := ResolveRecipients(in)
	touched := make([]string, 0, len(res.Recipients))
	for _, recipient := range res.Recipients {
		row := &domain.RecentActivity{
			RecipientID: recipient.AccountID,
			CompanyID:   res.CompanyID,
			Action:      entry.Action,
			Description: recipient.Description,
			Details:     entry.Details,
		}
		if err := l.entries.Create(ctx, row); err != nil {
			l.log.Error("recording activity",
				zap.String("recipient_id", recipient.AccountID),
				zap.String("action", string(entry.Action)),
				zap.Error(err))
			continue
		}
		touched = append(touched, recipient.AccountID)
	}
	l.cache.Invalidate(ctx, touched...)
}

// UnreadToday returns the unread-today count for an account, via cache.
func (l *Logger) UnreadToday(ctx context.Context, accountID string) (int, error) {
	if count, ok := l.cache.Get(ctx, accountID); ok {
		return count, nil
	}
	count, err := l.entries.CountUnreadToday(ctx, accountID)
	if err != nil {
		return 0, err
	}
	l.cache.Set(ctx, accountID, count)
	return count, nil
}

// InvalidateUnread drops the cached badge count after the feed was read.
func (l *Logger) InvalidateUnread(ctx context.Context, accountID string) {
	l.cache.Invalidate(ctx, accountID)
}

func toStaffAccounts(records []repository.StaffRecord) []StaffAccount {
	out := make([]StaffAccount, 0, len(records))
	for _, rec := range records {
		out = append(out, StaffAccount{AccountID: rec.AccountID, CompanyID: rec.CompanyID})
	}
	return out
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/training-service/internal/auth"
	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
	"github.com/spec-kit/training-service/internal/reports"
	"github.com/spec-kit/training-service/internal/repository"
	"github.com/spec-kit/training-service/pkg/util/errorutil"
)

// ReportService produces session exports and consumes session imports.
type ReportService struct {
	sessions   repository.SessionRepository
	accounts   repository.AccountRepository
	dispatcher events.Dispatcher
}

// NewReportService builds the service.
func NewReportService(sessions repository.SessionRepository, accounts repository.AccountRepository, dispatcher events.Dispatcher) *ReportService {
	return &ReportService{sessions: sessions, accounts: accounts, dispatcher: dispatcher}
}

// ImportSummary reports the outcome of a spreadsheet import.
type ImportSummary struct {
	Created int
	Updated int
	Skipped []string
}

// ExportXLSX renders pending sessions as a spreadsheet.
func (s *ReportService) ExportXLSX(ctx context.Context, actor *auth.Principal, companyID *string) ([]byte, string, error) {
	sessions, err := s.sessions.ListWithFilter(ctx, repository.SessionFilter{
		CompanyID:  companyID,
		Statuses:   []domain.SessionStatus{domain.SessionStatusPending},
		SortByDate: true,
	})
	if err != nil {
		return nil, "", err
	}
	rows, err := s.toRows(ctx, sessions)
	if err != nil {
		return nil, "", err
	}
	f, err := reports.BuildWorkbook(rows)
	if err != nil {
		return nil, "", err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	s.announce(ctx, actor, events.EventSessionsExported, domain.ActionExport,
		fmt.Sprintf("Exported %d pending sessions to a spreadsheet.", len(rows)), companyID)
	return buf.Bytes(), "pending_sessions.xlsx", nil
}

// ExportPDF renders all sessions as a PDF document.
func (s *ReportService) ExportPDF(ctx context.Context, actor *auth.Principal, companyID *string) ([]byte, string, error) {
	sessions, err := s.sessions.ListWithFilter(ctx, repository.SessionFilter{
		CompanyID:  companyID,
		SortByDate: true,
	})
	if err != nil {
		return nil, "", err
	}
	rows, err := s.toRows(ctx, sessions)
	if err != nil {
		return nil, "", err
	}
	out, err := reports.BuildPDF("Training Sessions", rows)
	if err != nil {
		return nil, "", err
	}
	s.announce(ctx, actor, events.EventSessionsExported, domain.ActionExport,
		fmt.Sprintf("Exported %d sessions to PDF.", len(rows)), companyID)
	return out, "sessions.pdf", nil
}

// ImportXLSX reads a spreadsheet and upserts its sessions into the
// company, keyed by topic and conductor. Rows the parser or the company
// check rejects are skipped with a message; a bad header rejects the
// whole file.
func (s *ReportService) ImportXLSX(ctx context.Context, actor *auth.Principal, r io.Reader, companyID string) (*ImportSummary, error) {
	parsed, err := reports.ParseWorkbook(ctx, r, s.accounts.FindByFullName)
	if err != nil {
		var badHeader *reports.ErrBadHeader
		if errors.As(err, &badHeader) {
			return nil, errorutil.NewValidationError(badHeader.Error(), nil)
		}
		return nil, errorutil.NewValidationError("could not read spreadsheet", map[string]any{"error": err.Error()})
	}

	summary := &ImportSummary{Skipped: parsed.Skipped}
	for _, row := range parsed.Rows {
		if msg := s.conductorInCompany(ctx, row.ConductedBy, companyID); msg != "" {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("topic %q: %s", row.Topic, msg))
			continue
		}

		existing, err := s.sessions.GetByTopicAndConductor(ctx, row.Topic, row.ConductedBy)
		switch {
		case err == nil:
			existing.ScheduledAt = row.ScheduledAt
			existing.Status = row.Status
			existing.Place = row.Place
			existing.CancelledReason = row.CancelledReason
			if err := s.sessions.Update(ctx, existing); err != nil {
				return nil, err
			}
			summary.Updated++
		case errors.Is(err, pgx.ErrNoRows):
			session := &domain.SessionTopic{
				Topic:           row.Topic,
				ConductedBy:     row.ConductedBy,
				CompanyID:       companyID,
				ScheduledAt:     row.ScheduledAt,
				Status:          row.Status,
				Place:           row.Place,
				CancelledReason: row.CancelledReason,
			}
			if err := s.sessions.Create(ctx, session); err != nil {
				return nil, err
			}
			summary.Created++
		default:
			return nil, err
		}
	}

	s.announce(ctx, actor, events.EventSessionsImported, domain.ActionImport,
		fmt.Sprintf("Imported sessions from a spreadsheet (%d created, %d updated, %d skipped).",
			summary.Created, summary.Updated, len(summary.Skipped)), &companyID)
	return summary, nil
}

// toRows resolves conductor names for report rendering. Lookups are
// memoized per export.
func (s *ReportService) toRows(ctx context.Context, sessions []domain.SessionTopic) ([]reports.Row, error) {
	names := map[string]string{}
	rows := make([]reports.Row, 0, len(sessions))
	for _, session := range sessions {
		name, ok := names[session.ConductedBy]
		if !ok {
			account, err := s.accounts.GetByID(ctx, session.ConductedBy)
			if err != nil {
				if !errors.Is(err, pgx.ErrNoRows) {
					return nil, err
				}
				name = ""
			} else {
				name = account.FullName()
			}
			names[session.ConductedBy] = name
		}
		row := reports.Row{
			Topic:      session.Topic,
			Date:       session.ScheduledAt,
			Status:     string(session.Status),
			AssignedTo: name,
			Place:      string(session.Place),
		}
		if session.CancelledReason != nil {
			row.CancelledReason = *session.CancelledReason
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ReportService) conductorInCompany(ctx context.Context, accountID, companyID string) string {
	profile, err := s.accounts.GetProfile(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "assignee has no company assignment"
		}
		return "could not load assignee profile"
	}
	if profile.CompanyID == nil || *profile.CompanyID != companyID {
		return "assignee belongs to a different company"
	}
	return ""
}

func (s *ReportService) announce(ctx context.Context, actor *auth.Principal, eventType events.EventType, action domain.ActivityAction, description string, companyID *string) {
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		Actor:        actor.Account,
		ActorCompany: actor.CompanyID(),
		CompanyID:    companyID,
		Action:       action,
		Description:  description,
		Timestamp:    time.Now(),
	})
}

package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/training-service/internal/domain"
	"github.com/spec-kit/training-service/internal/events"
)

func reportFixture(t *testing.T) (*ReportService, *fakeAccountRepo, *fakeSessionRepo, *captureDispatcher) {
	t.Helper()
	accounts := newFakeAccountRepo()
	sessions := newFakeSessionRepo()
	dispatcher := &captureDispatcher{}
	return NewReportService(sessions, accounts, dispatcher), accounts, sessions, dispatcher
}

func sessionsWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	all := append([][]string{
		{"No.", "Topic", "Date", "Status", "Assigned To", "Place", "Cancelled Reason"},
	}, rows...)
	f := excelize.NewFile()
	for i, row := range all {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportXLSXCreatesThenUpdates(t *testing.T) {
	svc, accounts, sessions, _ := reportFixture(t)
	role := domain.RoleEmployee
	jane := accounts.add(
		domain.Account{Username: "jdoe", FirstName: "Jane", LastName: "Doe"},
		&domain.UserProfile{CompanyID: strPtr("c1"), Role: &role},
	)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	rows := [][]string{
		{"1", "Intro to X", "2024/01/15", "Pending", "Jane Doe", "Auditorium", ""},
	}

	first, err := svc.ImportXLSX(context.Background(), actor, sessionsWorkbook(t, rows), "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 0, first.Updated)
	assert.Empty(t, first.Skipped)

	// Re-importing the same rows updates in place instead of duplicating.
	rows[0][3] = "Completed"
	second, err := svc.ImportXLSX(context.Background(), actor, sessionsWorkbook(t, rows), "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)

	stored, err := sessions.GetByTopicAndConductor(context.Background(), "Intro to X", jane.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionStatusCompleted, stored.Status)
	assert.Len(t, sessions.sessions, 1)
}

func TestImportXLSXSkipsForeignCompanyAssignee(t *testing.T) {
	svc, accounts, sessions, _ := reportFixture(t)
	role := domain.RoleEmployee
	accounts.add(
		domain.Account{Username: "bob", FirstName: "Bob", LastName: "Ray"},
		&domain.UserProfile{CompanyID: strPtr("c2"), Role: &role},
	)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	summary, err := svc.ImportXLSX(context.Background(), actor, sessionsWorkbook(t, [][]string{
		{"1", "Topic A", "2024/01/15", "Pending", "Bob Ray", "Auditorium", ""},
	}), "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Created)
	require.Len(t, summary.Skipped, 1)
	assert.Contains(t, summary.Skipped[0], "different company")
	assert.Empty(t, sessions.sessions)
}

func TestImportXLSXRejectsBadHeader(t *testing.T) {
	svc, accounts, _, _ := reportFixture(t)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Wrong"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = svc.ImportXLSX(context.Background(), actor, buf, "c1")
	assert.Error(t, err)
}

func TestExportXLSXOnlyPendingSessions(t *testing.T) {
	svc, accounts, sessions, dispatcher := reportFixture(t)
	role := domain.RoleEmployee
	jane := accounts.add(
		domain.Account{Username: "jdoe", FirstName: "Jane", LastName: "Doe"},
		&domain.UserProfile{CompanyID: strPtr("c1"), Role: &role},
	)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	seed := []domain.SessionTopic{
		{Topic: "Keep", ConductedBy: jane.ID, CompanyID: "c1", Status: domain.SessionStatusPending, Place: domain.PlaceAuditorium},
		{Topic: "Drop", ConductedBy: jane.ID, CompanyID: "c1", Status: domain.SessionStatusCompleted, Place: domain.PlaceAuditorium},
	}
	for i := range seed {
		require.NoError(t, sessions.Create(context.Background(), &seed[i]))
	}

	data, filename, err := svc.ExportXLSX(context.Background(), actor, strPtr("c1"))
	require.NoError(t, err)
	assert.Equal(t, "pending_sessions.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows("Sessions")
	require.NoError(t, err)
	require.Len(t, got, 2) // header + one pending row
	assert.Equal(t, "Keep", got[1][1])
	assert.Equal(t, "Jane Doe", got[1][4])

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventSessionsExported, dispatcher.published[0].Type)
	assert.Equal(t, domain.ActionExport, dispatcher.published[0].Action)
}

func TestExportPDFIncludesAllSessions(t *testing.T) {
	svc, accounts, sessions, _ := reportFixture(t)
	role := domain.RoleEmployee
	jane := accounts.add(
		domain.Account{Username: "jdoe", FirstName: "Jane", LastName: "Doe"},
		&domain.UserProfile{CompanyID: strPtr("c1"), Role: &role},
	)
	admin := accounts.add(domain.Account{Username: "root", IsSuperAdmin: true}, nil)
	actor := testPrincipal(admin, nil)

	seed := []domain.SessionTopic{
		{Topic: "A", ConductedBy: jane.ID, CompanyID: "c1", Status: domain.SessionStatusPending, Place: domain.PlaceUnset},
		{Topic: "B", ConductedBy: jane.ID, CompanyID: "c1", Status: domain.SessionStatusCompleted, Place: domain.PlaceUnset},
	}
	for i := range seed {
		require.NoError(t, sessions.Create(context.Background(), &seed[i]))
	}

	data, filename, err := svc.ExportPDF(context.Background(), actor, strPtr("c1"))
	require.NoError(t, err)
	assert.Equal(t, "sessions.pdf", filename)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

package reports

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/training-service/internal/domain"
)

func lookupTable(accounts map[string][]domain.Account) AssigneeLookup {
	return func(_ context.Context, first, last string) ([]domain.Account, error) {
		return accounts[first+" "+last], nil
	}
}

func workbookBytes(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
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

func headerRow() []string {
	return []string{"No.", "Topic", "Date", "Status", "Assigned To", "Place", "Cancelled Reason"}
}

func TestParseWorkbookSingleRow(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		headerRow(),
		{"1", "Intro to X", "2024/01/15", "Pending", "Jane Doe", "Auditorium", ""},
	})
	lookup := lookupTable(map[string][]domain.Account{
		"Jane Doe": {{ID: "acc-jane", FirstName: "Jane", LastName: "Doe"}},
	})

	result, err := ParseWorkbook(context.Background(), buf, lookup)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Empty(t, result.Skipped)

	row := result.Rows[0]
	assert.Equal(t, "Intro to X", row.Topic)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), row.ScheduledAt)
	assert.Equal(t, domain.SessionStatusPending, row.Status)
	assert.Equal(t, domain.PlaceAuditorium, row.Place)
	assert.Equal(t, "acc-jane", row.ConductedBy)
	assert.Nil(t, row.CancelledReason)
}

func TestParseWorkbookRejectsBadHeader(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		{"Num", "Topic", "Date", "Status", "Assigned To", "Place", "Cancelled Reason"},
		{"1", "Intro to X", "2024/01/15", "Pending", "Jane Doe", "Auditorium", ""},
	})

	_, err := ParseWorkbook(context.Background(), buf, lookupTable(nil))
	require.Error(t, err)
	var badHeader *ErrBadHeader
	assert.ErrorAs(t, err, &badHeader)
}

func TestParseWorkbookSkipsBadRows(t *testing.T) {
	buf := workbookBytes(t, [][]string{
		headerRow(),
		{"1", "", "2024/01/15", "Pending", "Jane Doe", "Auditorium", ""},            // blank topic
		{"2", "Topic A", "2024/01/15", "Pending", "", "Auditorium", ""},             // blank assignee
		{"3", "Topic B", "15-01-2024", "Pending", "Jane Doe", "Auditorium", ""},     // bad date
		{"4", "Topic C", "2024/01/15", "Started", "Jane Doe", "Auditorium", ""},     // bad status
		{"5", "Topic D", "2024/01/15", "Pending", "Jane Doe", "Cafeteria", ""},      // bad place
		{"6", "Topic E", "2024/01/15", "Pending", "Ghost Person", "Auditorium", ""}, // unknown assignee
		{"7", "Topic F", "2024/01/15", "Pending", "John Smith", "Auditorium", ""},   // ambiguous assignee
		{"8", "Topic G", "2024/02/01", "Cancelled", "Jane Doe", "", "room double-booked"}, // blank place
		{"9", "Topic H", "2024/02/01", "Cancelled", "Jane Doe", "--- Select Place ---", "room double-booked"},
	})
	lookup := lookupTable(map[string][]domain.Account{
		"Jane Doe":   {{ID: "acc-jane"}},
		"John Smith": {{ID: "acc-js-1"}, {ID: "acc-js-2"}},
	})

	result, err := ParseWorkbook(context.Background(), buf, lookup)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Skipped, 8)
	assert.Contains(t, result.Skipped[7], `unknown place ""`)

	row := result.Rows[0]
	assert.Equal(t, "Topic H", row.Topic)
	assert.Equal(t, domain.SessionStatusCancelled, row.Status)
	assert.Equal(t, domain.PlaceUnset, row.Place)
	require.NotNil(t, row.CancelledReason)
	assert.Equal(t, "room double-booked", *row.CancelledReason)
}

func TestExportRoundTripsThroughImport(t *testing.T) {
	rows := []Row{
		{
			Topic:      "Quarterly Safety Review",
			Date:       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Status:     "Pending",
			AssignedTo: "Jane Doe",
			Place:      "Customer Lounge",
		},
	}
	f, err := BuildWorkbook(rows)
	require.NoError(t, err)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	lookup := lookupTable(map[string][]domain.Account{
		"Jane Doe": {{ID: "acc-jane"}},
	})
	result, err := ParseWorkbook(context.Background(), buf, lookup)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "Quarterly Safety Review", result.Rows[0].Topic)
	assert.Equal(t, domain.PlaceCustomerLounge, result.Rows[0].Place)
	assert.Equal(t, rows[0].Date, result.Rows[0].ScheduledAt)
}

func TestSplitFullName(t *testing.T) {
	first, last, ok := splitFullName("Jane Doe")
	require.True(t, ok)
	assert.Equal(t, "Jane", first)
	assert.Equal(t, "Doe", last)

	// Everything after the first space belongs to the last name.
	first, last, ok = splitFullName("Mary Jane Watson")
	require.True(t, ok)
	assert.Equal(t, "Mary", first)
	assert.Equal(t, "Jane Watson", last)

	_, _, ok = splitFullName("Cher")
	assert.False(t, ok)
}

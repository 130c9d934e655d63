package reports

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/training-service/internal/domain"
)

// AssigneeLookup resolves a "First Last" name to candidate accounts.
// More or fewer than one candidate makes the row unresolvable.
type AssigneeLookup func(ctx context.Context, firstName, lastName string) ([]domain.Account, error)

// ImportedRow is one successfully parsed spreadsheet row.
type ImportedRow struct {
	Topic           string
	ScheduledAt     time.Time
	Status          domain.SessionStatus
	Place           domain.SessionPlace
	CancelledReason *string
	ConductedBy     string
}

// ImportResult collects parsed rows and per-row skip messages.
type ImportResult struct {
	Rows    []ImportedRow
	Skipped []string
}

// ErrBadHeader rejects a whole file whose header row does not match the
// expected schema.
type ErrBadHeader struct {
	Got []string
}

func (e *ErrBadHeader) Error() string {
	return fmt.Sprintf("unexpected header row %v, want %v", e.Got, Headers)
}

// ParseWorkbook reads a session spreadsheet. A wrong header fails the
// whole file; bad individual rows are skipped with a message.
func ParseWorkbook(ctx context.Context, r io.Reader, lookup AssigneeLookup) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || !headerMatches(rows[0]) {
		var got []string
		if len(rows) > 0 {
			got = rows[0]
		}
		return nil, &ErrBadHeader{Got: got}
	}

	result := &ImportResult{}
	for i, cells := range rows[1:] {
		rowNum := i + 2
		parsed, reason := parseRow(ctx, cells, lookup)
		if reason != "" {
			result.Skipped = append(result.Skipped, fmt.Sprintf("row %d: %s", rowNum, reason))
			continue
		}
		result.Rows = append(result.Rows, *parsed)
	}
	return result, nil
}

func headerMatches(cells []string) bool {
	if len(cells) < len(Headers) {
		return false
	}
	for i, want := range Headers {
		if strings.TrimSpace(cells[i]) != want {
			return false
		}
	}
	return true
}

func parseRow(ctx context.Context, cells []string, lookup AssigneeLookup) (*ImportedRow, string) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}

	topic := cell(1)
	if topic == "" {
		return nil, "topic is blank"
	}
	assigned := cell(4)
	if assigned == "" {
		return nil, "assignee is blank"
	}

	date, err := time.Parse(DateLayout, cell(2))
	if err != nil {
		return nil, fmt.Sprintf("bad date %q", cell(2))
	}

	status := domain.SessionStatus(cell(3))
	if !domain.ValidSessionStatus(status) {
		return nil, fmt.Sprintf("unknown status %q", cell(3))
	}
	// A blank cell is not a place choice either.
	place := domain.SessionPlace(cell(5))
	if !domain.ValidSessionPlace(place) {
		return nil, fmt.Sprintf("unknown place %q", cell(5))
	}

	first, last, ok := splitFullName(assigned)
	if !ok {
		return nil, fmt.Sprintf("assignee %q is not a \"First Last\" name", assigned)
	}
	candidates, err := lookup(ctx, first, last)
	if err != nil {
		return nil, fmt.Sprintf("resolving assignee %q: %v", assigned, err)
	}
	switch len(candidates) {
	case 0:
		return nil, fmt.Sprintf("no account matches assignee %q", assigned)
	case 1:
	default:
		return nil, fmt.Sprintf("assignee %q is ambiguous (%d accounts)", assigned, len(candidates))
	}

	row := &ImportedRow{
		Topic:       topic,
		ScheduledAt: date,
		Status:      status,
		Place:       place,
		ConductedBy: candidates[0].ID,
	}
	if reason := cell(6); reason != "" {
		row.CancelledReason = &reason
	}
	return row, ""
}

// splitFullName splits on the first space: everything before is the
// first name, everything after the last name.
func splitFullName(name string) (string, string, bool) {
	idx := strings.Index(name, " ")
	if idx <= 0 || idx == len(name)-1 {
		return "", "", false
	}
	return name[:idx], strings.TrimSpace(name[idx+1:]), true
}

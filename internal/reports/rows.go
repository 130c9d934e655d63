package reports

import "time"

// DateLayout is the spreadsheet date format used on both export and
// import.
const DateLayout = "2006/01/02"

// Headers is the fixed column order of session spreadsheets. Imports
// reject files whose header row differs.
var Headers = []string{"No.", "Topic", "Date", "Status", "Assigned To", "Place", "Cancelled Reason"}

// Row is one session as it appears in a report.
type Row struct {
	Topic           string
	Date            time.Time
	Status          string
	AssignedTo      string
	Place           string
	CancelledReason string
}

package reports

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// BuildPDF renders rows into a landscape A4 table document.
func BuildPDF(title string, rows []Row) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	widths := []float64{12, 70, 26, 26, 50, 40, 50}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range Headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		values := []string{
			strconv.Itoa(i + 1),
			row.Topic,
			row.Date.Format(DateLayout),
			row.Status,
			row.AssignedTo,
			row.Place,
			row.CancelledReason,
		}
		for col, value := range values {
			pdf.CellFormat(widths[col], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package reports

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sessions"

// BuildWorkbook renders rows into a styled spreadsheet with a bold
// header and per-column auto width.
func BuildWorkbook(rows []Row) (*excelize.File, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for col, header := range Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	widths := make([]int, len(Headers))
	for i, header := range Headers {
		widths[i] = len(header)
	}
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
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
	}

	for col := range Headers {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheetName, name, name, float64(widths[col]+2)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

package timesheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook layout: the "Hours" sheet, one header row, then one record
// per row across columns A-E.
const (
	sheetName  = "Hours"
	headerRows = 1
)

// Positional meaning of the sheet columns. Only this source interprets
// positions; everything else works with the named Record.
const (
	colDate = iota
	colHours
	colRate
	colNotes
	colStatus
)

// XLSXSource reads records from a local spreadsheet workbook. It is
// read-only: marking rows billed stays with whoever owns the sheet.
type XLSXSource struct {
	path string
}

func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{path: path}
}

func (s *XLSXSource) Records(ctx context.Context) ([]Record, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	recs := make([]Record, 0, len(rows))
	for i, row := range rows {
		if i < headerRows {
			continue
		}
		recs = append(recs, Record{
			Date:   cell(row, colDate),
			Hours:  cell(row, colHours),
			Rate:   cell(row, colRate),
			Notes:  cell(row, colNotes),
			Status: cell(row, colStatus),
		})
	}
	return recs, nil
}

// cell returns the column's value, or "" past the row's last filled
// cell (excelize trims trailing empties).
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

package timesheet

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	_, err := f.NewSheet(sheetName)
	require.NoError(t, err)

	header := []any{"Date", "Hours", "Rate", "Notes", "Billing Status"}
	require.NoError(t, f.SetSheetRow(sheetName, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "hours.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXSourceRecords(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"March 3, 2024", "3", "33", "I did some stuff!", StatusUnbilled},
		{"March 4, 2024", "12", "33", "Big day | More stuff", StatusBilled},
		{"March 5, 2024", "1.5", "40", "", StatusUnbilled},
	})

	recs, err := NewXLSXSource(path).Records(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, Record{
		Date:   "March 3, 2024",
		Hours:  "3",
		Rate:   "33",
		Notes:  "I did some stuff!",
		Status: StatusUnbilled,
	}, recs[0])
	assert.Equal(t, StatusBilled, recs[1].Status)
	// Row order in the sheet is preserved.
	assert.Equal(t, "March 5, 2024", recs[2].Date)
	// Empty notes cell survives as an empty field, not a short row error.
	assert.Empty(t, recs[2].Notes)
}

func TestXLSXSourceMissingFile(t *testing.T) {
	_, err := NewXLSXSource(filepath.Join(t.TempDir(), "nope.xlsx")).Records(context.Background())
	require.ErrorIs(t, err, ErrSourceRead)
}

func TestXLSXSourceMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := filepath.Join(t.TempDir(), "wrong.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := NewXLSXSource(path).Records(context.Background())
	require.ErrorIs(t, err, ErrSourceRead)
}

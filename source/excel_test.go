package source_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/warp/config-ops-hub/source"
)

// writeWorkbook creates a small two-sheet test workbook and returns its path.
func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Summary"))
	_, err := f.NewSheet("Stores Checklist")
	require.NoError(t, err)

	rows := [][]interface{}{
		{"Dealer Name", "Go Live Date", "Status", ""},
		{"Alpha Ford", "2025-11-10", "Complete"},
		{"", "", ""}, // fully blank, skipped
		{"Bravo Kia", "2025-11-20"}, // short row, padded
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Stores Checklist", cell, &row))
	}
	require.NoError(t, f.SetSheetRow("Summary", "A1", &[]interface{}{"Wrong", "Sheet"}))

	path := filepath.Join(t.TempDir(), "CRM Data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadExcel_ReadsNamedSheet(t *testing.T) {
	path := writeWorkbook(t)

	rows, err := source.LoadExcel(path, "stores checklist") // case-insensitive
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank line skipped")

	assert.Equal(t, "Alpha Ford", rows[0]["Dealer Name"])
	assert.Equal(t, "Complete", rows[0]["Status"])

	// The short row pads its missing trailing cells with blanks.
	assert.Equal(t, "Bravo Kia", rows[1]["Dealer Name"])
	assert.Equal(t, "", rows[1]["Status"])
}

func TestLoadExcel_FallsBackToFirstSheet(t *testing.T) {
	path := writeWorkbook(t)

	rows, err := source.LoadExcel(path, "No Such Sheet")
	require.NoError(t, err)

	// The first sheet ("Summary") serves instead.
	require.Len(t, rows, 0)
}

func TestLoadExcel_MissingFile(t *testing.T) {
	_, err := source.LoadExcel(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)
}

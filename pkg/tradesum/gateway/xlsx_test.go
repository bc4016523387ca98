package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// writeWorkbook builds a real xlsx file for gateway tests.
func writeWorkbook(t *testing.T, path string, sheets map[string][][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				ref, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, ref, v))
			}
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestDirSourceListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "feb.xlsx"), map[string][][]any{"Sheet1": {{"Total", 1}}})
	writeWorkbook(t, filepath.Join(dir, "jan.xlsx"), map[string][][]any{"Sheet1": {{"Total", 2}}})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$jan.xlsx"), []byte("x"), 0644))

	src := NewDirSource(dir)
	assert.Equal(t, filepath.Base(dir), src.Name())

	handles, err := src.ListDocuments()
	require.NoError(t, err)
	// Lexical order, owner files and foreign extensions skipped.
	assert.Equal(t, []string{"feb.xlsx", "jan.xlsx"}, handles)
}

func TestDirSourceOpenAndRead(t *testing.T) {
	dir := t.TempDir()
	writeWorkbook(t, filepath.Join(dir, "jan report.xlsx"), map[string][][]any{
		"Sheet1": {
			{"Item", "Amount"},
			{"Widget", 4},
			{nil, "Total", 500},
		},
	})

	src := NewDirSource(dir)
	doc, err := src.OpenDocument("jan report.xlsx")
	require.NoError(t, err)
	defer doc.Close()

	assert.Equal(t, "jan report", doc.Name())
	assert.Equal(t, []string{"Sheet1"}, doc.SheetNames())

	grid, err := doc.ReadGrid("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, models.TextCell("Total"), grid.At(3, 2))
	assert.Equal(t, models.NumberCell(500), grid.At(3, 3))

	_, err = doc.ReadGrid("NoSuchSheet")
	assert.Error(t, err)
}

func TestDirSourceOpenFailure(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("not a workbook"), 0644))

	src := NewDirSource(dir)
	_, err := src.OpenDocument("broken.xlsx")
	assert.Error(t, err)
}

func TestWorkbookWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWorkbookWriter(path)

	summary := models.Table{
		Name: "TRADE SUMMARY",
		Rows: [][]models.Cell{
			{models.TextCell("NUM"), models.NumberCell(2)},
			{},
			{models.TextCell("jan"), models.TextCell("Sheet1"), models.NumberCell(10)},
		},
	}
	view := models.Table{
		Name:   "BY SOURCE sum",
		Header: []string{"Source", "sum"},
		Rows: [][]models.Cell{
			{models.TextCell("jan"), models.NumberCell(10)},
		},
	}

	require.NoError(t, w.DeleteTableIfExists(summary.Name))
	require.NoError(t, w.WriteTable(summary))
	require.NoError(t, w.DeleteTableIfExists(view.Name))
	require.NoError(t, w.WriteTable(view))

	saved, err := w.Save()
	require.NoError(t, err)
	assert.Equal(t, path, saved)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	// The scratch sheet is gone; only the written tables remain.
	assert.ElementsMatch(t, []string{"TRADE SUMMARY", "BY SOURCE sum"}, f.GetSheetList())

	got, err := f.GetCellValue("TRADE SUMMARY", "A1")
	require.NoError(t, err)
	assert.Equal(t, "NUM", got)
	got, err = f.GetCellValue("TRADE SUMMARY", "C3")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	// Header row first, data below.
	got, err = f.GetCellValue("BY SOURCE sum", "B1")
	require.NoError(t, err)
	assert.Equal(t, "sum", got)
	got, err = f.GetCellValue("BY SOURCE sum", "B2")
	require.NoError(t, err)
	assert.Equal(t, "10", got)
}

func TestWorkbookWriterDeleteThenRebuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	w := NewWorkbookWriter(path)

	table := models.Table{
		Name: "TRADE SUMMARY",
		Rows: [][]models.Cell{{models.TextCell("old"), models.NumberCell(1)}},
	}
	require.NoError(t, w.WriteTable(table))

	rebuilt := models.Table{
		Name: "TRADE SUMMARY",
		Rows: [][]models.Cell{{models.TextCell("new"), models.NumberCell(2)}},
	}
	require.NoError(t, w.DeleteTableIfExists(rebuilt.Name))
	require.NoError(t, w.WriteTable(rebuilt))

	_, err := w.Save()
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("TRADE SUMMARY", "A1")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
	rows, err := f.GetRows("TRADE SUMMARY")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOutputFilename(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "summary-of-reports-20260831.xlsx", OutputFilename("reports", now))
	assert.Equal(t, "summary-of-q1-trade-data-20260831.xlsx", OutputFilename(" q1 trade data ", now))
}

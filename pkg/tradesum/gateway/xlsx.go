package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// DirSource reads input documents from a directory of xlsx files.
// Documents are enumerated in lexical filename order, which keeps the
// processing order deterministic across runs.
type DirSource struct {
	dir string
}

// NewDirSource creates a source over a directory.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: filepath.Clean(dir)}
}

// Name returns the directory base name.
func (s *DirSource) Name() string {
	return filepath.Base(s.dir)
}

// ListDocuments returns the xlsx filenames in the directory, in lexical
// order. Excel owner files ("~$...") are skipped.
func (s *DirSource) ListDocuments() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list documents in %s: %w", s.dir, err)
	}
	var handles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		handles = append(handles, name)
	}
	return handles, nil
}

// OpenDocument opens one xlsx file from the directory.
func (s *DirSource) OpenDocument(handle string) (Document, error) {
	f, err := excelize.OpenFile(filepath.Join(s.dir, handle))
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", handle, err)
	}
	return &xlsxDocument{
		name: strings.TrimSuffix(handle, filepath.Ext(handle)),
		f:    f,
	}, nil
}

type xlsxDocument struct {
	name string
	f    *excelize.File
}

func (d *xlsxDocument) Name() string {
	return d.name
}

func (d *xlsxDocument) SheetNames() []string {
	return d.f.GetSheetList()
}

func (d *xlsxDocument) ReadGrid(sheet string) (models.Grid, error) {
	rows, err := d.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", sheet, d.name, err)
	}
	return ParseGrid(rows), nil
}

func (d *xlsxDocument) Close() error {
	return d.f.Close()
}

// WorkbookWriter renders tables as sheets of a single output workbook.
type WorkbookWriter struct {
	f            *excelize.File
	path         string
	written      int
	wroteDefault bool
}

// NewWorkbookWriter creates a writer for a new workbook at path.
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{f: excelize.NewFile(), path: path}
}

// DeleteTableIfExists removes the named sheet when present.
func (w *WorkbookWriter) DeleteTableIfExists(name string) error {
	idx, err := w.f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("look up table %q: %w", name, err)
	}
	if idx == -1 {
		return nil
	}
	if err := w.f.DeleteSheet(name); err != nil {
		return fmt.Errorf("delete table %q: %w", name, err)
	}
	return nil
}

// WriteTable renders one table into a sheet of the same name: the header
// row first when the table has one, then the data rows.
func (w *WorkbookWriter) WriteTable(t models.Table) error {
	if _, err := w.f.NewSheet(t.Name); err != nil {
		return fmt.Errorf("create table %q: %w", t.Name, err)
	}

	row := 1
	if len(t.Header) > 0 {
		for col, name := range t.Header {
			if err := w.setCell(t.Name, row, col+1, name); err != nil {
				return err
			}
		}
		row++
	}
	for _, cells := range t.Rows {
		for col, cell := range cells {
			if cell.IsEmpty() {
				continue
			}
			if err := w.setCell(t.Name, row, col+1, cell.Value()); err != nil {
				return err
			}
		}
		row++
	}
	w.written++
	if t.Name == defaultSheet {
		w.wroteDefault = true
	}
	return nil
}

func (w *WorkbookWriter) setCell(sheet string, row, col int, value any) error {
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("address cell (%d,%d) of %q: %w", row, col, sheet, err)
	}
	if err := w.f.SetCellValue(sheet, ref, value); err != nil {
		return fmt.Errorf("write cell %s of %q: %w", ref, sheet, err)
	}
	return nil
}

// defaultSheet is the scratch sheet excelize seeds new workbooks with.
const defaultSheet = "Sheet1"

// Save finalizes the workbook and returns the written path. The scratch
// sheet is dropped once real tables exist, unless a table claimed its name.
func (w *WorkbookWriter) Save() (string, error) {
	if w.written > 0 && !w.wroteDefault {
		if idx, err := w.f.GetSheetIndex(defaultSheet); err == nil && idx != -1 {
			_ = w.f.DeleteSheet(defaultSheet)
		}
	}
	if err := w.f.SaveAs(w.path); err != nil {
		return "", fmt.Errorf("save workbook %s: %w", w.path, err)
	}
	return w.path, nil
}

// OutputFilename derives the output workbook filename from the source
// name and the run date, with spaces replaced by hyphens.
func OutputFilename(source string, now time.Time) string {
	name := strings.ReplaceAll(strings.TrimSpace(source), " ", "-")
	return fmt.Sprintf("summary-of-%s-%s.xlsx", name, now.Format("20060102"))
}

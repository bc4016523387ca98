// Package gateway provides the workbook boundary: enumeration and reading
// of input documents, and creation of named output tables.
package gateway

import (
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// Source enumerates and opens input documents. Enumeration order is
// significant and must be deterministic.
type Source interface {
	// Name identifies the source, used to derive the output filename.
	Name() string
	// ListDocuments returns document handles in processing order.
	ListDocuments() ([]string, error)
	// OpenDocument opens one document by handle.
	OpenDocument(handle string) (Document, error)
}

// Document is one open input document with its sheets in declared order.
type Document interface {
	// Name is the document name recorded in extracted entries.
	Name() string
	// SheetNames returns sheet names in declared order.
	SheetNames() []string
	// ReadGrid reads one sheet as a typed cell grid.
	ReadGrid(sheet string) (models.Grid, error)
	// Close releases the document.
	Close() error
}

// TableWriter creates named output tables in a single destination. The
// destination is exclusively owned by one pipeline run.
type TableWriter interface {
	// DeleteTableIfExists removes a previously written table of the same
	// name, if any. Regeneration is always delete-then-rebuild.
	DeleteTableIfExists(name string) error
	// WriteTable renders one table: the header row first when present,
	// then the data rows.
	WriteTable(t models.Table) error
	// Save finalizes the destination and returns where it was written.
	Save() (string, error)
}

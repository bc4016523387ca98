package tradesum

import (
	"errors"
	"fmt"
)

// ErrLabelNotFound indicates the search label is absent from a grid, sits
// in the last column of its row, or the adjacent cell is not numeric.
var ErrLabelNotFound = errors.New("label not found or adjacent value not numeric")

// ErrTableMissing indicates a required source table is absent or empty
// when a derived view is built.
var ErrTableMissing = errors.New("required table missing")

// ErrColumnNotFound indicates a pivot key names a column the source table
// does not have.
var ErrColumnNotFound = errors.New("column not found")

// ErrInsufficientData indicates a source table has fewer data rows than a
// pivot definition requires.
var ErrInsufficientData = errors.New("insufficient data rows")

// CollectError represents a failure while collecting from one document or
// sheet.
type CollectError struct {
	Document string
	Sheet    string
	Err      error
}

func (e *CollectError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("collect error in document %q: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("collect error in document %q sheet %q: %v", e.Document, e.Sheet, e.Err)
}

func (e *CollectError) Unwrap() error {
	return e.Err
}

// NewCollectError creates a new CollectError.
func NewCollectError(document, sheet string, err error) *CollectError {
	return &CollectError{
		Document: document,
		Sheet:    sheet,
		Err:      err,
	}
}

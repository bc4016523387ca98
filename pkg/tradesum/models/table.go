package models

// Table is a named two-dimensional relation: an optional header row of
// column names followed by data rows of cells.
type Table struct {
	// Name is the table name used by the output destination.
	Name string `json:"name"`
	// Header holds column names, empty when the table has no header row.
	Header []string `json:"header,omitempty"`
	// Rows holds the data rows.
	Rows [][]Cell `json:"rows"`
}

// Column returns the 0-based index of the named header column.
func (t Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// NumRows returns the number of data rows.
func (t Table) NumRows() int {
	return len(t.Rows)
}

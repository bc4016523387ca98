package models

// Entry is one fact extracted from one sheet: the value found next to the
// search label, tagged with where it came from. Entries are never mutated
// after creation.
type Entry struct {
	// Source is the name of the document the value came from.
	Source string `json:"source"`
	// Tab is the name of the sheet within the document.
	Tab string `json:"tab"`
	// Value is the extracted numeric value.
	Value float64 `json:"value"`
}

// RecordSequence is the ordered collection of extracted entries.
// Insertion order is processing order (document, then sheet within
// document) and is preserved end-to-end.
type RecordSequence []Entry

// Diagnostic records one skipped item during a run.
type Diagnostic struct {
	// Document is the document (or derived table) the failure relates to.
	Document string `json:"document"`
	// Sheet is the sheet within the document, when applicable.
	Sheet string `json:"sheet,omitempty"`
	// Reason describes why the item was skipped.
	Reason string `json:"reason"`
}

// RunReport summarizes one pipeline run. A run always produces a report,
// even when parts of it failed.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string `json:"run_id"`
	// Processed is the number of entries successfully extracted.
	Processed int `json:"processed"`
	// Skipped is the number of items that degraded to a diagnostic.
	Skipped int `json:"skipped"`
	// Diagnostics lists every skipped item in processing order.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

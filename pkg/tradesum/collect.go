package tradesum

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/ukita/tradesum-go/pkg/tradesum/gateway"
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// reasonMiss is the diagnostic reason recorded for an extraction miss.
const reasonMiss = "label not found or non-numeric"

// Collector drives the extractor across every sheet of every input
// document and accumulates the ordered record sequence.
type Collector struct {
	src    gateway.Source
	logger *slog.Logger
	opts   Options
}

// NewCollector creates a collector over a source. A nil logger falls back
// to slog.Default().
func NewCollector(src gateway.Source, logger *slog.Logger, opts Options) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{src: src, logger: logger, opts: opts}
}

// Collect processes every document of the source in enumeration order and
// every sheet of each document in declared order (alphabetical when
// Options.SortSheets is set). Sheets where the label is missing or
// non-numeric are skipped with a diagnostic; a document that fails to
// open, or a sheet that fails to read, skips the remainder of that
// document only. Collect never fails: it always returns whatever it
// accumulated plus the run report.
func (c *Collector) Collect() (models.RecordSequence, models.RunReport) {
	report := models.RunReport{RunID: uuid.NewString()}
	var recs models.RecordSequence

	handles, err := c.src.ListDocuments()
	if err != nil {
		c.logger.Error("listing documents failed", slog.String("error", err.Error()))
		c.skip(&report, models.Diagnostic{Document: c.src.Name(), Reason: err.Error()})
		return recs, report
	}

	for _, handle := range handles {
		doc, err := c.src.OpenDocument(handle)
		if err != nil {
			cerr := NewCollectError(handle, "", err)
			c.logger.Warn("document skipped", slog.String("document", handle), slog.String("error", err.Error()))
			c.skip(&report, models.Diagnostic{Document: handle, Reason: cerr.Error()})
			continue
		}
		recs = c.collectDocument(doc, recs, &report)
		if err := doc.Close(); err != nil {
			c.logger.Warn("closing document failed", slog.String("document", doc.Name()), slog.String("error", err.Error()))
		}
	}

	c.logger.Info("collection complete",
		slog.String("run_id", report.RunID),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped))
	return recs, report
}

// collectDocument drains one document. A sheet read failure abandons the
// remaining sheets of this document; extraction misses only skip the one
// sheet.
func (c *Collector) collectDocument(doc gateway.Document, recs models.RecordSequence, report *models.RunReport) models.RecordSequence {
	names := doc.SheetNames()
	if c.opts.SortSheets {
		names = append([]string(nil), names...)
		sort.Strings(names)
	}

	for _, sheet := range names {
		grid, err := doc.ReadGrid(sheet)
		if err != nil {
			cerr := NewCollectError(doc.Name(), sheet, err)
			c.logger.Warn("document abandoned after read failure",
				slog.String("document", doc.Name()), slog.String("sheet", sheet), slog.String("error", err.Error()))
			c.skip(report, models.Diagnostic{Document: doc.Name(), Sheet: sheet, Reason: cerr.Error()})
			return recs
		}

		value, err := ExtractLabelValue(grid, c.opts.SearchLabel)
		if err != nil {
			c.logger.Debug("sheet skipped",
				slog.String("document", doc.Name()), slog.String("sheet", sheet), slog.String("label", c.opts.SearchLabel))
			c.skip(report, models.Diagnostic{Document: doc.Name(), Sheet: sheet, Reason: reasonMiss})
			continue
		}

		recs = append(recs, models.Entry{Source: doc.Name(), Tab: sheet, Value: value})
		report.Processed++
	}
	return recs
}

func (c *Collector) skip(report *models.RunReport, d models.Diagnostic) {
	report.Skipped++
	report.Diagnostics = append(report.Diagnostics, d)
}

package tradesum

import (
	"fmt"
	"log/slog"

	"github.com/ukita/tradesum-go/pkg/tradesum/gateway"
	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// Run executes one full pipeline pass, strictly sequentially: collect all
// entries, rebuild the summary table, then rebuild one view per pivot
// definition. Every derived table is deleted before it is rebuilt, so
// repeating a run over unchanged inputs reproduces identical output.
//
// A failed pivot degrades to a diagnostic and the remaining views still
// build. The only error returned is a failure to produce the output
// destination itself.
func Run(opts Options, defs []models.PivotDefinition, src gateway.Source, dest gateway.TableWriter, logger *slog.Logger) (models.RunReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := opts.Validate(); err != nil {
		return models.RunReport{}, fmt.Errorf("invalid options: %w", err)
	}

	recs, report := NewCollector(src, logger, opts).Collect()

	summary := BuildSummary(recs, opts)
	if err := writeTable(dest, summary); err != nil {
		return report, fmt.Errorf("write summary table: %w", err)
	}
	logger.Info("summary table built",
		slog.String("table", summary.Name),
		slog.Int("entries", len(recs)))

	rel, err := SummaryRelation(summary, opts)
	if err != nil {
		logger.Warn("pivot views skipped", slog.String("error", err.Error()))
		skipRun(&report, models.Diagnostic{Document: summary.Name, Reason: err.Error()})
	} else {
		for _, def := range defs {
			view, err := BuildPivot(rel, def)
			if err != nil {
				logger.Warn("pivot view skipped",
					slog.String("view", def.Name), slog.String("error", err.Error()))
				skipRun(&report, models.Diagnostic{Document: def.Name, Reason: err.Error()})
				continue
			}
			if err := writeTable(dest, view); err != nil {
				logger.Warn("pivot view not written",
					slog.String("view", def.Name), slog.String("error", err.Error()))
				skipRun(&report, models.Diagnostic{Document: def.Name, Reason: err.Error()})
				continue
			}
			logger.Info("pivot view built",
				slog.String("view", def.Name),
				slog.String("fn", def.Fn.String()),
				slog.Int("rows", view.NumRows()))
		}
	}

	path, err := dest.Save()
	if err != nil {
		return report, fmt.Errorf("save output destination: %w", err)
	}
	logger.Info("run complete",
		slog.String("run_id", report.RunID),
		slog.String("output", path),
		slog.Int("processed", report.Processed),
		slog.Int("skipped", report.Skipped))
	return report, nil
}

// writeTable regenerates one table: delete if it exists, then build.
// Never an incremental append.
func writeTable(dest gateway.TableWriter, t models.Table) error {
	if err := dest.DeleteTableIfExists(t.Name); err != nil {
		return err
	}
	return dest.WriteTable(t)
}

func skipRun(report *models.RunReport, d models.Diagnostic) {
	report.Skipped++
	report.Diagnostics = append(report.Diagnostics, d)
}

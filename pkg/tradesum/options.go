package tradesum

import (
	"fmt"
	"strings"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// Statistic is one labelled aggregate rendered in the summary table
// header block.
type Statistic struct {
	// Label is the row label in the header block.
	Label string
	// Fn is the aggregate applied to the value column.
	Fn models.SummarizeFunc
}

// DefaultStatistics returns the standard header block, in render order.
func DefaultStatistics() []Statistic {
	return []Statistic{
		{Label: "NUM", Fn: models.FnCount},
		{Label: "SUM", Fn: models.FnSum},
		{Label: "AVG", Fn: models.FnAverage},
		{Label: "MIN", Fn: models.FnMin},
		{Label: "MAX", Fn: models.FnMax},
		{Label: "DEV", Fn: models.FnStdDev},
	}
}

// ParseStatistic maps a header-block label to its statistic.
func ParseStatistic(label string) (Statistic, error) {
	for _, s := range DefaultStatistics() {
		if strings.EqualFold(s.Label, label) {
			return s, nil
		}
	}
	return Statistic{}, fmt.Errorf("unknown statistic %q", label)
}

// Options configures one pipeline run. A zero value is not usable;
// start from DefaultOptions.
type Options struct {
	// SearchLabel is the label the extractor looks for in every sheet.
	SearchLabel string
	// SummaryName is the name of the rendered summary table.
	SummaryName string
	// DataStartRow is the 1-based row at which the summary body starts.
	// Rows above it hold the statistics header block.
	DataStartRow int
	// SortSheets orders sheets alphabetically within each document.
	// The default keeps the declared sheet order.
	SortSheets bool
	// Statistics is the ordered header block of the summary table.
	Statistics []Statistic
}

// DefaultOptions returns the default pipeline options.
func DefaultOptions() Options {
	return Options{
		SearchLabel:  "Total",
		SummaryName:  "TRADE SUMMARY",
		DataStartRow: 8,
		Statistics:   DefaultStatistics(),
	}
}

// Validate checks that the options describe a renderable summary layout.
func (o Options) Validate() error {
	if o.SearchLabel == "" {
		return fmt.Errorf("search label must not be empty")
	}
	if o.SummaryName == "" {
		return fmt.Errorf("summary table name must not be empty")
	}
	if o.DataStartRow < 2 {
		return fmt.Errorf("data start row must be at least 2, got %d", o.DataStartRow)
	}
	if need := len(o.Statistics) + 1; o.DataStartRow < need {
		return fmt.Errorf("data start row %d leaves no room for %d statistics rows", o.DataStartRow, len(o.Statistics))
	}
	return nil
}

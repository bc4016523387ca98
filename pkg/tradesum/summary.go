package tradesum

import (
	"fmt"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// Summary column layout, shared by the builder and the relation reader.
var summaryColumns = []string{"Source", "Tab", "Value"}

// BuildSummary renders a record sequence into the summary table. Rows
// 1..DataStartRow-1 hold the statistics header block, one statistic per
// row, padded with blank rows when the block is shorter. The body starts
// at DataStartRow and holds the record sequence verbatim, in order.
//
// The result is a pure function of its inputs: rebuilding from the same
// records yields an identical table.
func BuildSummary(recs models.RecordSequence, opts Options) models.Table {
	values := make([]float64, len(recs))
	for i, e := range recs {
		values[i] = e.Value
	}

	rows := make([][]models.Cell, 0, opts.DataStartRow-1+len(recs))
	rows = append(rows, statisticRows(values, opts.Statistics)...)
	for len(rows) < opts.DataStartRow-1 {
		rows = append(rows, []models.Cell{})
	}
	for _, e := range recs {
		rows = append(rows, []models.Cell{
			models.TextCell(e.Source),
			models.TextCell(e.Tab),
			models.NumberCell(e.Value),
		})
	}

	return models.Table{Name: opts.SummaryName, Rows: rows}
}

// statisticRows renders the header block. Each row is [label, value].
// AVG and DEV are rounded to two decimals; min, max and average of an
// empty value column render as empty cells.
func statisticRows(values []float64, stats []Statistic) [][]models.Cell {
	cells := make([]models.Cell, len(values))
	for i, v := range values {
		cells[i] = models.NumberCell(v)
	}

	rows := make([][]models.Cell, 0, len(stats))
	for _, st := range stats {
		v, ok := Summarize(st.Fn, cells)
		value := models.EmptyCell()
		if ok {
			if st.Fn == models.FnAverage || st.Fn == models.FnStdDev {
				v = round2(v)
			}
			value = models.NumberCell(v)
		}
		rows = append(rows, []models.Cell{models.TextCell(st.Label), value})
	}
	return rows
}

// SummaryRelation recovers the data body of a rendered summary table as a
// header-named relation suitable as pivot input. Header rows above
// DataStartRow are excluded. It returns ErrTableMissing when the table is
// unnamed or does not reach the configured body offset.
func SummaryRelation(summary models.Table, opts Options) (models.Table, error) {
	if summary.Name == "" {
		return models.Table{}, fmt.Errorf("%w: summary table not built", ErrTableMissing)
	}
	if len(summary.Rows) < opts.DataStartRow-1 {
		return models.Table{}, fmt.Errorf("%w: summary table %q has no body at row %d",
			ErrTableMissing, summary.Name, opts.DataStartRow)
	}
	body := summary.Rows[opts.DataStartRow-1:]
	rows := make([][]models.Cell, len(body))
	copy(rows, body)
	return models.Table{
		Name:   summary.Name,
		Header: append([]string(nil), summaryColumns...),
		Rows:   rows,
	}, nil
}

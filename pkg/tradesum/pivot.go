package tradesum

import (
	"fmt"
	"math"
	"sort"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// TotalsLabel is the label of the synthetic totals row and column.
const TotalsLabel = "TOTAL"

// BuildPivot applies one group-by/summarize definition to a source
// relation and renders the result as a table.
//
// Row groups (and column groups, when ColKey is set) are the distinct key
// values in first-seen order. With SortByValueDesc the row groups are
// reordered by their aggregate value, descending, ties broken by
// first-seen order. Each result cell holds the definition's summarize
// function applied to the value cells of that key combination; a
// combination absent from the data renders as an empty cell, as does a
// combination for which the function is undefined. With ShowTotals a
// synthetic row (and column, for cross-tabulations) aggregates across all
// groups with the same function.
//
// Building a view reads only the source relation; views never depend on
// one another and can be rebuilt or skipped individually.
func BuildPivot(src models.Table, def models.PivotDefinition) (models.Table, error) {
	rowIdx, ok := src.Column(def.RowKey)
	if !ok {
		return models.Table{}, fmt.Errorf("%w: row key %q in table %q", ErrColumnNotFound, def.RowKey, src.Name)
	}
	valIdx, ok := src.Column(def.ValueKey)
	if !ok {
		return models.Table{}, fmt.Errorf("%w: value key %q in table %q", ErrColumnNotFound, def.ValueKey, src.Name)
	}
	colIdx := -1
	if def.ColKey != "" {
		colIdx, ok = src.Column(def.ColKey)
		if !ok {
			return models.Table{}, fmt.Errorf("%w: column key %q in table %q", ErrColumnNotFound, def.ColKey, src.Name)
		}
	}
	if src.NumRows() < def.MinRows {
		return models.Table{}, fmt.Errorf("%w: table %q has %d rows, pivot %q needs %d",
			ErrInsufficientData, src.Name, src.NumRows(), def.Name, def.MinRows)
	}

	g := newGrouping()
	for _, row := range src.Rows {
		rk := cellAt(row, rowIdx).String()
		ck := ""
		if colIdx >= 0 {
			ck = cellAt(row, colIdx).String()
		}
		g.add(rk, ck, cellAt(row, valIdx))
	}

	rowKeys := g.rowOrder
	if def.SortByValueDesc {
		rowKeys = g.sortedByAggregate(def.Fn)
	}

	if colIdx < 0 {
		return renderPivot(def, g, rowKeys), nil
	}
	return renderCrossTab(def, g, rowKeys), nil
}

// grouping accumulates value cells per (row key, column key) combination
// while preserving first-seen key order.
type grouping struct {
	rowOrder []string
	colOrder []string
	cells    map[string]map[string][]models.Cell
	rowCells map[string][]models.Cell
	colCells map[string][]models.Cell
	all      []models.Cell
}

func newGrouping() *grouping {
	return &grouping{
		cells:    make(map[string]map[string][]models.Cell),
		rowCells: make(map[string][]models.Cell),
		colCells: make(map[string][]models.Cell),
	}
}

func (g *grouping) add(rowKey, colKey string, value models.Cell) {
	byCol, seen := g.cells[rowKey]
	if !seen {
		byCol = make(map[string][]models.Cell)
		g.cells[rowKey] = byCol
		g.rowOrder = append(g.rowOrder, rowKey)
	}
	if _, seen := g.colCells[colKey]; !seen {
		g.colOrder = append(g.colOrder, colKey)
	}
	byCol[colKey] = append(byCol[colKey], value)
	g.rowCells[rowKey] = append(g.rowCells[rowKey], value)
	g.colCells[colKey] = append(g.colCells[colKey], value)
	g.all = append(g.all, value)
}

// sortedByAggregate returns the row keys ordered by their aggregate
// value, descending. Stable sort keeps first-seen order between equal
// aggregates; groups with an undefined aggregate sort last.
func (g *grouping) sortedByAggregate(fn models.SummarizeFunc) []string {
	keys := append([]string(nil), g.rowOrder...)
	agg := make(map[string]float64, len(keys))
	for _, k := range keys {
		v, ok := Summarize(fn, g.rowCells[k])
		if !ok {
			v = math.Inf(-1)
		}
		agg[k] = v
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return agg[keys[i]] > agg[keys[j]]
	})
	return keys
}

// renderPivot renders a one-dimensional view: one row per group with its
// aggregate, plus an optional totals row.
func renderPivot(def models.PivotDefinition, g *grouping, rowKeys []string) models.Table {
	rows := make([][]models.Cell, 0, len(rowKeys)+1)
	for _, rk := range rowKeys {
		rows = append(rows, []models.Cell{
			models.TextCell(rk),
			aggregateCell(def.Fn, g.rowCells[rk]),
		})
	}
	if def.ShowTotals {
		rows = append(rows, []models.Cell{
			models.TextCell(TotalsLabel),
			aggregateCell(def.Fn, g.all),
		})
	}
	return models.Table{
		Name:   def.Name,
		Header: []string{def.RowKey, def.Fn.String()},
		Rows:   rows,
	}
}

// renderCrossTab renders a two-dimensional view: one row per row group,
// one column per column group, plus optional totals on both axes with the
// grand total in the corner.
func renderCrossTab(def models.PivotDefinition, g *grouping, rowKeys []string) models.Table {
	header := make([]string, 0, len(g.colOrder)+2)
	header = append(header, def.RowKey)
	header = append(header, g.colOrder...)
	if def.ShowTotals {
		header = append(header, TotalsLabel)
	}

	rows := make([][]models.Cell, 0, len(rowKeys)+1)
	for _, rk := range rowKeys {
		row := make([]models.Cell, 0, len(header))
		row = append(row, models.TextCell(rk))
		for _, ck := range g.colOrder {
			cells, seen := g.cells[rk][ck]
			if !seen {
				row = append(row, models.EmptyCell())
				continue
			}
			row = append(row, aggregateCell(def.Fn, cells))
		}
		if def.ShowTotals {
			row = append(row, aggregateCell(def.Fn, g.rowCells[rk]))
		}
		rows = append(rows, row)
	}

	if def.ShowTotals {
		row := make([]models.Cell, 0, len(header))
		row = append(row, models.TextCell(TotalsLabel))
		for _, ck := range g.colOrder {
			row = append(row, aggregateCell(def.Fn, g.colCells[ck]))
		}
		row = append(row, aggregateCell(def.Fn, g.all))
		rows = append(rows, row)
	}

	return models.Table{Name: def.Name, Header: header, Rows: rows}
}

// aggregateCell renders one aggregate as a cell, empty when the function
// is undefined for the group.
func aggregateCell(fn models.SummarizeFunc, cells []models.Cell) models.Cell {
	v, ok := Summarize(fn, cells)
	if !ok {
		return models.EmptyCell()
	}
	return models.NumberCell(v)
}

// cellAt returns the cell at a 0-based index, or an empty cell when the
// row is shorter.
func cellAt(row []models.Cell, idx int) models.Cell {
	if idx < 0 || idx >= len(row) {
		return models.EmptyCell()
	}
	return row[idx]
}

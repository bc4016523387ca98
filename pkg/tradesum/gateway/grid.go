package gateway

import (
	"strconv"
	"time"

	"github.com/ukita/tradesum-go/pkg/tradesum/models"
)

// dateLayouts are the date renderings recognized when typing a cell.
var dateLayouts = []string{"2006-01-02", "2006/01/02", "01-02-06"}

// ParseGrid converts raw sheet rows into a typed cell grid and trims
// trailing all-empty rows and columns. Leading empty rows and columns are
// kept so 1-based addressing matches the sheet.
func ParseGrid(rows [][]string) models.Grid {
	grid := make(models.Grid, len(rows))
	for i, row := range rows {
		cells := make([]models.Cell, len(row))
		for j, raw := range row {
			cells[j] = parseCell(raw)
		}
		grid[i] = cells
	}
	return trimGrid(grid)
}

// parseCell types one raw cell value: number, date, text, or empty.
// Numeric is a successful parse of the full content, never a coercion of
// mixed text.
func parseCell(raw string) models.Cell {
	if raw == "" {
		return models.EmptyCell()
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberCell(v)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return models.DateCell(t)
		}
	}
	return models.TextCell(raw)
}

// trimGrid drops rows past the last non-empty row and cells past the last
// non-empty column.
func trimGrid(grid models.Grid) models.Grid {
	maxRow, maxCol := dataBounds(grid)
	if maxRow < 0 {
		return models.Grid{}
	}
	grid = grid[:maxRow+1]
	for i, row := range grid {
		if len(row) > maxCol+1 {
			grid[i] = row[:maxCol+1]
		}
	}
	return grid
}

// dataBounds finds the last row and column holding a non-empty cell,
// both -1 for an entirely empty grid.
func dataBounds(grid models.Grid) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if rowIdx > maxRow {
				maxRow = rowIdx
			}
			if colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}
	return maxRow, maxCol
}

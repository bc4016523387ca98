// Package tradesum consolidates scalar figures scraped from many tabular
// documents into one summary table and renders grouped pivot views over it.
package tradesum

import "github.com/ukita/tradesum-go/pkg/tradesum/models"

// ExtractLabelValue scans a grid row by row, left to right, for the first
// text cell whose content equals label exactly, and returns the numeric
// value of the cell immediately to its right.
//
// It returns ErrLabelNotFound when no cell matches, when the matching
// cell is the last in its row, or when the adjacent cell is not numeric.
// The first match decides the outcome; later matches are never consulted.
func ExtractLabelValue(grid models.Grid, label string) (float64, error) {
	for _, row := range grid {
		for col, cell := range row {
			if cell.Kind != models.KindText || cell.Text != label {
				continue
			}
			if col+1 >= len(row) {
				return 0, ErrLabelNotFound
			}
			next := row[col+1]
			if !next.IsNumber() {
				return 0, ErrLabelNotFound
			}
			return next.Number, nil
		}
	}
	return 0, ErrLabelNotFound
}

// Package models defines data structures for workbook consolidation and
// pivot reporting.
package models

import (
	"strconv"
	"time"
)

// CellKind identifies the variant held by a Cell.
type CellKind int

const (
	// KindEmpty marks a cell with no content.
	KindEmpty CellKind = iota
	// KindNumber marks a numeric cell.
	KindNumber
	// KindText marks a text cell.
	KindText
	// KindDate marks a date cell.
	KindDate
)

// Cell is one tagged value inside a grid. Exactly one of the payload
// fields is meaningful, selected by Kind.
type Cell struct {
	Kind   CellKind
	Number float64
	Text   string
	Date   time.Time
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: KindNumber, Number: v}
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: KindText, Text: s}
}

// DateCell returns a date cell.
func DateCell(t time.Time) Cell {
	return Cell{Kind: KindDate, Date: t}
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{Kind: KindEmpty}
}

// IsNumber reports whether the cell holds a number.
func (c Cell) IsNumber() bool {
	return c.Kind == KindNumber
}

// IsEmpty reports whether the cell holds no content.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty
}

// String renders the cell content for display.
func (c Cell) String() string {
	switch c.Kind {
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindText:
		return c.Text
	case KindDate:
		return c.Date.Format("2006-01-02")
	default:
		return ""
	}
}

// Value returns the cell content as the native type a workbook writer
// expects, or nil for an empty cell.
func (c Cell) Value() any {
	switch c.Kind {
	case KindNumber:
		return c.Number
	case KindText:
		return c.Text
	case KindDate:
		return c.Date
	default:
		return nil
	}
}

// Grid is a row-major sequence of cell rows. External addressing is
// 1-based; the slice itself is 0-based.
type Grid [][]Cell

// At returns the cell at the given 1-based row and column, or an empty
// cell when the address falls outside the grid.
func (g Grid) At(row, col int) Cell {
	if row < 1 || row > len(g) {
		return EmptyCell()
	}
	r := g[row-1]
	if col < 1 || col > len(r) {
		return EmptyCell()
	}
	return r[col-1]
}

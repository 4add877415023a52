// Package floorplan renders the restaurant's table grid for one date/time
// window and tracks which tables the customer has picked.
package floorplan

import (
	"errors"
	"fmt"
)

// Grid dimensions.  The floor plan is always drawn in full.
const (
	Rows  = 4
	Cols  = 4
	Cells = Rows * Cols
)

// Layout lists the table labels of the floor plan row by row.
type Layout [Cells]string

// DefaultLayout is the A1..D4 plan.
var DefaultLayout = Layout{
	"A1", "A2", "A3", "A4",
	"B1", "B2", "B3", "B4",
	"C1", "C2", "C3", "C4",
	"D1", "D2", "D3", "D4",
}

var ErrBadLayout = errors.New("floor plan must be 4 rows of 4 unique labels")

// LayoutFromRows validates rows read from the site file.
func LayoutFromRows(rows [][]string) (Layout, error) {
	var l Layout
	if len(rows) != Rows {
		return l, fmt.Errorf("%w: got %d rows", ErrBadLayout, len(rows))
	}
	seen := make(map[string]bool, Cells)
	for i, row := range rows {
		if len(row) != Cols {
			return l, fmt.Errorf("%w: row %d has %d labels", ErrBadLayout, i+1, len(row))
		}
		for j, label := range row {
			if label == "" || seen[label] {
				return l, fmt.Errorf("%w: bad label %q in row %d", ErrBadLayout, label, i+1)
			}
			seen[label] = true
			l[i*Cols+j] = label
		}
	}
	return l, nil
}

package floorplan

import (
	"html/template"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// Cell is one slot of the grid.  Table is nil when the availability
// response had no table with this label.
type Cell struct {
	Index    int
	Label    string
	Table    *model.Table
	Icon     template.HTML
	Booked   bool
	Selected bool
}

// Available reports whether the cell holds a table that can be picked.
func (c Cell) Available() bool { return c.Table != nil && !c.Booked }

// Class is the css class list of the table element.
func (c Cell) Class() string {
	switch {
	case c.Table == nil:
		return ""
	case c.Booked:
		return "table booked"
	case c.Selected:
		return "table available selected"
	}
	return "table available"
}

// BuildGrid lays the availability response onto the layout.  It always
// returns exactly Cells cells in layout order; labels missing from tables
// stay empty and tables whose label is not in the layout are ignored.
func BuildGrid(layout Layout, tables []model.Table, sel Selection) []Cell {
	byLabel := make(map[string]model.Table, len(tables))
	for _, t := range tables {
		byLabel[t.TableNumber] = t
	}
	cells := make([]Cell, 0, Cells)
	for i, label := range layout {
		c := Cell{Index: i, Label: label}
		if t, ok := byLabel[label]; ok && label != "" {
			c.Table = &t
			c.Icon = Icon(t.Capacity)
			c.Booked = t.IsBooked
			c.Selected = !t.IsBooked && sel.Has(t.ID)
		}
		cells = append(cells, c)
	}
	return cells
}

// AvailableIDs lists the ids of the tables that can be picked in cells.
func AvailableIDs(cells []Cell) []uint64 {
	var ids []uint64
	for _, c := range cells {
		if c.Available() {
			ids = append(ids, c.Table.ID)
		}
	}
	return ids
}

package floorplan

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

func TestBuildGridAlwaysSixteenCells(t *testing.T) {
	tables := []model.Table{
		{ID: 1, TableNumber: "A1", Capacity: 2},
		{ID: 6, TableNumber: "B2", Capacity: 6, IsBooked: true},
		{ID: 16, TableNumber: "D4", Capacity: 8},
		{ID: 99, TableNumber: "Z9", Capacity: 4},
	}

	cells := BuildGrid(DefaultLayout, tables, Selection{1})
	if len(cells) != Cells {
		t.Fatalf("expected %d cells, got %d", Cells, len(cells))
	}

	populated := map[string]bool{}
	for i, c := range cells {
		if c.Index != i || c.Label != DefaultLayout[i] {
			t.Fatalf("cell %d out of layout order: %+v", i, c)
		}
		if c.Table != nil {
			populated[c.Label] = true
		}
	}
	if !reflect.DeepEqual(populated, map[string]bool{"A1": true, "B2": true, "D4": true}) {
		t.Fatalf("unexpected populated cells %v", populated)
	}

	a1, b2, d4 := cells[0], cells[5], cells[15]
	if a1.Class() != "table available selected" || !a1.Available() {
		t.Fatalf("A1 = %q", a1.Class())
	}
	if b2.Class() != "table booked" || b2.Available() {
		t.Fatalf("B2 = %q", b2.Class())
	}
	if a1.Icon != Icon(2) || b2.Icon != Icon(6) {
		t.Fatal("capacity icons not applied")
	}
	if d4.Icon != Icon(4) {
		t.Fatal("unsupported capacity must fall back to the four-seat icon")
	}
	if cells[1].Table != nil || cells[1].Class() != "" {
		t.Fatalf("A2 should be empty, got %+v", cells[1])
	}
}

func TestBuildGridEmptyResponse(t *testing.T) {
	cells := BuildGrid(DefaultLayout, nil, nil)
	if len(cells) != Cells {
		t.Fatalf("expected %d cells, got %d", Cells, len(cells))
	}
	if ids := AvailableIDs(cells); len(ids) != 0 {
		t.Fatalf("expected no available ids, got %v", ids)
	}
}

func TestAvailableIDs(t *testing.T) {
	cells := BuildGrid(DefaultLayout, []model.Table{
		{ID: 1, TableNumber: "A1"},
		{ID: 2, TableNumber: "A2", IsBooked: true},
		{ID: 3, TableNumber: "C3"},
	}, nil)
	if got := AvailableIDs(cells); !reflect.DeepEqual(got, []uint64{1, 3}) {
		t.Fatalf("AvailableIDs = %v", got)
	}
}

func TestLayoutFromRows(t *testing.T) {
	l, err := LayoutFromRows([][]string{
		{"A1", "A2", "A3", "A4"},
		{"B1", "B2", "B3", "B4"},
		{"C1", "C2", "C3", "C4"},
		{"D1", "D2", "D3", "D4"},
	})
	if err != nil {
		t.Fatalf("LayoutFromRows: %v", err)
	}
	if l != DefaultLayout {
		t.Fatalf("layout = %v", l)
	}

	bad := [][][]string{
		{{"A1", "A2", "A3", "A4"}},
		{{"A1", "A2", "A3"}, {"B1", "B2", "B3", "B4"}, {"C1", "C2", "C3", "C4"}, {"D1", "D2", "D3", "D4"}},
		{{"A1", "A1", "A3", "A4"}, {"B1", "B2", "B3", "B4"}, {"C1", "C2", "C3", "C4"}, {"D1", "D2", "D3", "D4"}},
	}
	for i, rows := range bad {
		if _, err := LayoutFromRows(rows); !errors.Is(err, ErrBadLayout) {
			t.Fatalf("case %d: expected ErrBadLayout, got %v", i, err)
		}
	}
}

package booking

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iliyamo/table-reservation-web/internal/floorplan"
	"github.com/iliyamo/table-reservation-web/internal/model"
)

func readyFlow(t *testing.T) *Flow {
	t.Helper()
	f := &Flow{}
	f.SetWindow("2026-10-20", "19:00")
	if f.State() != PhaseRendering {
		t.Fatalf("expected rendering, got %s", f.State())
	}
	f.Rendered(floorplan.BuildGrid(floorplan.DefaultLayout, []model.Table{
		{ID: 1, TableNumber: "A1", Capacity: 2},
		{ID: 2, TableNumber: "A2", Capacity: 4},
		{ID: 3, TableNumber: "A3", Capacity: 6, IsBooked: true},
	}, nil))
	if f.State() != PhaseReady {
		t.Fatalf("expected ready, got %s", f.State())
	}
	return f
}

func TestZeroFlowIsIdle(t *testing.T) {
	var f Flow
	if f.State() != PhaseIdle {
		t.Fatalf("zero flow = %s", f.State())
	}
	f.SetWindow("2026-10-20", "")
	if f.State() != PhaseIdle {
		t.Fatalf("half window = %s", f.State())
	}
}

func TestToggleOnlyAvailable(t *testing.T) {
	f := readyFlow(t)
	if f.Toggle(3) {
		t.Fatal("booked table toggled")
	}
	if f.Toggle(42) {
		t.Fatal("unknown table toggled")
	}
	if !f.Toggle(1) || !f.Toggle(2) || !f.Toggle(1) {
		t.Fatal("available toggles refused")
	}
	if !reflect.DeepEqual(f.Selection, floorplan.Selection{2}) {
		t.Fatalf("selection = %v", f.Selection)
	}
}

func TestWindowChangeDiscardsSelection(t *testing.T) {
	f := readyFlow(t)
	f.Toggle(1)

	if f.SetWindow("2026-10-20", "19:00") {
		t.Fatal("same window reported as change")
	}
	if len(f.Selection) != 1 {
		t.Fatal("same window must keep the selection")
	}

	if !f.SetWindow("2026-10-21", "19:00") {
		t.Fatal("new window not reported")
	}
	if len(f.Selection) != 0 || len(f.Available) != 0 {
		t.Fatalf("grid and selection not discarded: %+v", f)
	}
	if f.Toggle(1) {
		t.Fatal("toggle allowed before the new grid was rendered")
	}
}

func TestRenderedDropsTablesNoLongerAvailable(t *testing.T) {
	f := readyFlow(t)
	f.Toggle(1)
	f.Toggle(2)
	f.SetWindow("2026-10-20", "19:00")
	f.Rendered(floorplan.BuildGrid(floorplan.DefaultLayout, []model.Table{
		{ID: 1, TableNumber: "A1", IsBooked: true},
		{ID: 2, TableNumber: "A2"},
	}, f.Selection))
	if !reflect.DeepEqual(f.Selection, floorplan.Selection{2}) {
		t.Fatalf("selection = %v", f.Selection)
	}
}

func TestBeginSubmit(t *testing.T) {
	f := readyFlow(t)
	if err := f.BeginSubmit(); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	f.Toggle(2)
	if err := f.BeginSubmit(); err != nil {
		t.Fatalf("BeginSubmit: %v", err)
	}
	if f.State() != PhaseSubmitting {
		t.Fatalf("expected submitting, got %s", f.State())
	}
	f.SubmitFailed()
	if f.State() != PhaseReady || len(f.Selection) != 1 {
		t.Fatalf("failed submit must return to ready with selection, got %+v", f)
	}

	req := f.Request("Ann", "555", model.User{ID: 7, Username: "alice"})
	want := model.NewReservation{Name: "Ann", Contact: "555", Date: "2026-10-20", Time: "19:00", TableIDs: []uint64{2}, UserID: 7}
	if !reflect.DeepEqual(req, want) {
		t.Fatalf("request = %+v", req)
	}

	f.Reset()
	if f.State() != PhaseIdle || f.HasWindow() || len(f.Selection) != 0 {
		t.Fatalf("reset flow = %+v", f)
	}
}

func TestRenderFailed(t *testing.T) {
	f := readyFlow(t)
	f.RenderFailed()
	if f.State() != PhaseFailed || f.Toggle(1) {
		t.Fatalf("failed render must block toggles: %+v", f)
	}
}

func TestRenderFailedBlocksSubmit(t *testing.T) {
	f := readyFlow(t)
	f.Toggle(1)
	f.SetWindow("2026-10-20", "19:00")
	f.RenderFailed()

	f.SetWindow("2026-10-20", "19:00")
	if err := f.BeginSubmit(); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if f.State() != PhaseFailed {
		t.Fatalf("refused submit moved the flow to %s", f.State())
	}
}

func TestRedrawReusesLastTables(t *testing.T) {
	f := &Flow{}
	f.SetWindow("2026-10-20", "19:00")
	drawn := f.Draw(floorplan.DefaultLayout, []model.Table{
		{ID: 1, TableNumber: "A1"},
		{ID: 2, TableNumber: "A2", IsBooked: true},
	})
	f.Toggle(1)

	f.SetWindow("2026-10-20", "19:00")
	if f.State() != PhaseReady {
		t.Fatalf("same window left ready for %s", f.State())
	}
	again := f.Redraw(floorplan.DefaultLayout)
	if len(again) != len(drawn) {
		t.Fatalf("redraw has %d cells, want %d", len(again), len(drawn))
	}
	if f.Toggle(2) {
		t.Fatal("booked table toggled after redraw")
	}

	f.SetWindow("2026-10-21", "19:00")
	if len(f.Tables) != 0 || f.State() != PhaseRendering {
		t.Fatalf("new window kept the old tables: %+v", f)
	}
}

// Package booking holds the customer booking flow: the table-selection
// state machine, the submission checks and the cancel rule for "my
// bookings".
package booking

import (
	"errors"
	"slices"
	"strings"

	"github.com/iliyamo/table-reservation-web/internal/floorplan"
	"github.com/iliyamo/table-reservation-web/internal/model"
)

// Phase of the booking page.
type Phase string

const (
	PhaseIdle       Phase = "idle"       // no complete date/time window
	PhaseRendering  Phase = "rendering"  // availability being fetched
	PhaseReady      Phase = "ready"      // grid shown, zero or more tables picked
	PhaseFailed     Phase = "failed"     // availability fetch failed
	PhaseSubmitting Phase = "submitting" // reservation request in flight
)

var (
	// ErrEmptySelection is the local validation failure of a submit without
	// any table picked.
	ErrEmptySelection = errors.New("no table selected")
	// ErrNoWindow is returned by a submit without a complete date/time window.
	ErrNoWindow = errors.New("no date/time window")
	// ErrNotReady is returned by a submit while no grid is drawn for the
	// window, for instance after the availability fetch failed.
	ErrNotReady = errors.New("grid not ready")
)

// MsgEmptySelection is what the page shows for ErrEmptySelection.
const MsgEmptySelection = "Please select at least one table."

// Flow is the per-session state of the booking page.  The zero value is
// the Idle state.
type Flow struct {
	Date      string              `json:"date,omitempty"`
	Time      string              `json:"time,omitempty"`
	Phase     Phase               `json:"phase,omitempty"`
	Tables    []model.Table       `json:"tables,omitempty"`
	Available []uint64            `json:"available,omitempty"`
	Selection floorplan.Selection `json:"selection,omitempty"`
}

// State returns the phase, treating the zero value as Idle.
func (f *Flow) State() Phase {
	if f.Phase == "" {
		return PhaseIdle
	}
	return f.Phase
}

// HasWindow reports whether both date and time are chosen.
func (f *Flow) HasWindow() bool { return f.Date != "" && f.Time != "" }

// SetWindow moves the flow to a date/time window.  A window that differs
// from the current one discards the previous grid and selection and waits
// for a new render; the same window keeps the current phase.  It returns
// true when the window changed.
func (f *Flow) SetWindow(date, tm string) bool {
	date, tm = strings.TrimSpace(date), strings.TrimSpace(tm)
	changed := date != f.Date || tm != f.Time
	if changed {
		f.Tables = nil
		f.Available = nil
		f.Selection = nil
	}
	f.Date, f.Time = date, tm
	switch {
	case !f.HasWindow():
		f.Phase = PhaseIdle
	case changed || f.State() == PhaseIdle:
		f.Phase = PhaseRendering
	}
	return changed
}

// Draw lays the availability response for the current window onto layout
// and records it as rendered.
func (f *Flow) Draw(layout floorplan.Layout, tables []model.Table) []floorplan.Cell {
	f.Tables = tables
	cells := floorplan.BuildGrid(layout, tables, f.Selection)
	f.Rendered(cells)
	return cells
}

// Redraw rebuilds the last drawn grid without a new availability fetch.
func (f *Flow) Redraw(layout floorplan.Layout) []floorplan.Cell {
	return floorplan.BuildGrid(layout, f.Tables, f.Selection)
}

// Rendered records the grid that was drawn for the current window.  Picked
// tables that are no longer available are dropped.
func (f *Flow) Rendered(cells []floorplan.Cell) {
	f.Available = floorplan.AvailableIDs(cells)
	kept := f.Selection[:0:0]
	for _, id := range f.Selection {
		if slices.Contains(f.Available, id) {
			kept = append(kept, id)
		}
	}
	f.Selection = kept
	f.Phase = PhaseReady
}

// RenderFailed records that the availability fetch failed; nothing can be
// picked until the next successful render.
func (f *Flow) RenderFailed() {
	f.Tables = nil
	f.Available = nil
	f.Phase = PhaseFailed
}

// Toggle flips a table in the selection.  Only tables that were available
// in the last rendered grid can be toggled; it returns false otherwise.
func (f *Flow) Toggle(id uint64) bool {
	if f.State() != PhaseReady || !slices.Contains(f.Available, id) {
		return false
	}
	f.Selection = f.Selection.Toggle(id)
	return true
}

// BeginSubmit checks the selection and enters Submitting.  Only a Ready
// flow can submit.
func (f *Flow) BeginSubmit() error {
	if f.Selection.Empty() {
		return ErrEmptySelection
	}
	if !f.HasWindow() {
		return ErrNoWindow
	}
	if f.State() != PhaseReady {
		return ErrNotReady
	}
	f.Phase = PhaseSubmitting
	return nil
}

// SubmitFailed returns to Ready keeping the selection.
func (f *Flow) SubmitFailed() {
	if f.Phase == PhaseSubmitting {
		f.Phase = PhaseReady
	}
}

// Reset returns to Idle, like a page reload after a booking.
func (f *Flow) Reset() { *f = Flow{} }

// Request packages the submission.
func (f *Flow) Request(name, contact string, user model.User) model.NewReservation {
	return model.NewReservation{
		Name:     name,
		Contact:  contact,
		Date:     f.Date,
		Time:     f.Time,
		TableIDs: slices.Clone([]uint64(f.Selection)),
		UserID:   user.ID,
	}
}

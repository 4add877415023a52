// Package dashboard builds the admin view of all reservations: the status
// counters, one row per reservation and the actions each row offers.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// Action is a mutation an admin can request on a reservation row.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionDelete Action = "delete"
)

// ParseAction accepts the lower-case names used in the admin routes.
func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToLower(s)); a {
	case ActionAccept, ActionReject, ActionDelete:
		return a, true
	}
	return "", false
}

// Label is the button text.
func (a Action) Label() string {
	switch a {
	case ActionAccept:
		return "Accept"
	case ActionReject:
		return "Reject"
	case ActionDelete:
		return "Delete"
	}
	return string(a)
}

// TargetStatus is the status an accept/reject action moves a reservation
// to.  Delete has none.
func (a Action) TargetStatus() (model.Status, bool) {
	switch a {
	case ActionAccept:
		return model.StatusAccepted, true
	case ActionReject:
		return model.StatusRejected, true
	}
	return "", false
}

// Confirmation is the question shown before the action is sent.
func (a Action) Confirmation(id uint64) string {
	if a == ActionDelete {
		return fmt.Sprintf("Are you sure you want to delete reservation #%d?", id)
	}
	return fmt.Sprintf("Are you sure you want to %s this booking?", strings.ToLower(a.Label()))
}

// Counts are the four dashboard counters.  Total counts every reservation,
// so Pending+Accepted+Rejected equals Total only when no other status is
// present.
type Counts struct {
	Total    int
	Pending  int
	Accepted int
	Rejected int
}

// CountStatuses filters the collection in memory.
func CountStatuses(rs []model.Reservation) Counts {
	c := Counts{Total: len(rs)}
	for _, r := range rs {
		switch r.Status {
		case model.StatusPending:
			c.Pending++
		case model.StatusAccepted:
			c.Accepted++
		case model.StatusRejected:
			c.Rejected++
		}
	}
	return c
}

// Row is one rendered reservation line, keyed by ID.
type Row struct {
	ID          uint64
	Customer    string
	Contact     string
	When        string
	Tables      string
	Status      model.Status
	StatusClass string
	Actions     []Action
}

// ActionsFor returns Accept and Reject for pending reservations and Delete
// for everything else.
func ActionsFor(s model.Status) []Action {
	if s == model.StatusPending {
		return []Action{ActionAccept, ActionReject}
	}
	return []Action{ActionDelete}
}

// BuildRows keeps the order the API returned.
func BuildRows(rs []model.Reservation) []Row {
	rows := make([]Row, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, Row{
			ID:          r.ID,
			Customer:    r.CustomerName,
			Contact:     r.ContactInfo,
			When:        r.When(),
			Tables:      r.TableLabels(),
			Status:      r.Status,
			StatusClass: r.Status.CSSClass(),
			Actions:     ActionsFor(r.Status),
		})
	}
	return rows
}

// View is everything the dashboard template needs.  When LoadError is set
// the rows are empty and the table shows a single error line.
type View struct {
	Counts    Counts
	Rows      []Row
	LoadError string
	Alert     string
}

const (
	msgLoadError = "Error loading data."
	msgEmpty     = "No reservations found."
)

// NewView builds the dashboard for a fetched collection.
func NewView(rs []model.Reservation) View {
	return View{Counts: CountStatuses(rs), Rows: BuildRows(rs)}
}

// FailedView is the dashboard after the list could not be fetched.
func FailedView() View {
	return View{LoadError: msgLoadError}
}

// EmptyMessage is the text of the single row shown for an empty collection.
func (v View) EmptyMessage() string { return msgEmpty }

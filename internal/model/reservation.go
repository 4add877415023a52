package model

import (
	"strings"
	"time"
)

// DateLayout and TimeLayout are the wire formats the reservation API uses
// for reservation_date and reservation_time.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Status is the lifecycle state of a reservation as the backend spells it.
// Only the constants below are produced by this code.  Values decoded from
// the API that match none of them are kept and displayed as-is.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusRejected  Status = "Rejected"
	StatusCancelled Status = "Cancelled"
)

func (s Status) String() string { return string(s) }

// CSSClass is the lower-case badge class used by the views.
func (s Status) CSSClass() string { return strings.ToLower(string(s)) }

// Table is a seating unit as reported by the API.  IsBooked is only
// meaningful in the response to an availability query for a given date and
// time; booked_tables entries inside a reservation leave it false.
type Table struct {
	ID          uint64 `json:"id"`
	TableNumber string `json:"table_number"`
	Capacity    int    `json:"capacity"`
	IsBooked    bool   `json:"is_booked"`
}

// Reservation is the client-side view of a booking.  It is never mutated
// locally; pages re-fetch after every action.
type Reservation struct {
	ID              uint64  `json:"id"`
	CustomerName    string  `json:"customer_name"`
	ContactInfo     string  `json:"contact_info"`
	ReservationDate string  `json:"reservation_date"`
	ReservationTime string  `json:"reservation_time"`
	Status          Status  `json:"status"`
	BookedTables    []Table `json:"booked_tables"`
}

// TableLabels joins the labels of the booked tables the way both pages
// display them.
func (r Reservation) TableLabels() string {
	labels := make([]string, 0, len(r.BookedTables))
	for _, t := range r.BookedTables {
		labels = append(labels, t.TableNumber)
	}
	return strings.Join(labels, ", ")
}

// When formats the reservation slot as "DATE at TIME".
func (r Reservation) When() string {
	return r.ReservationDate + " at " + r.ReservationTime
}

// Date parses ReservationDate as midnight in loc.
func (r Reservation) Date(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, r.ReservationDate, loc)
}

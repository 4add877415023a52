package booking

import (
	"time"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// Cancelable reports whether a customer may cancel r at time now: the
// reservation date must be today or later (in now's location) and the
// status Pending or Accepted.  Unparsable dates are never cancelable.
func Cancelable(r model.Reservation, now time.Time) bool {
	if r.Status != model.StatusPending && r.Status != model.StatusAccepted {
		return false
	}
	day, err := r.Date(now.Location())
	if err != nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}

// Card is one entry of the "my bookings" list.
type Card struct {
	ID          uint64
	When        string
	Tables      string
	Status      model.Status
	StatusClass string
	CanCancel   bool
}

// Cards builds the list in API order.
func Cards(rs []model.Reservation, now time.Time) []Card {
	out := make([]Card, 0, len(rs))
	for _, r := range rs {
		out = append(out, Card{
			ID:          r.ID,
			When:        r.When(),
			Tables:      r.TableLabels(),
			Status:      r.Status,
			StatusClass: r.Status.CSSClass(),
			CanCancel:   Cancelable(r, now),
		})
	}
	return out
}

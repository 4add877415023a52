// Package session keeps the per-visitor state of the web front-end on the
// server: the logged-in customer, the admin flag, the booking flow and a
// one-shot flash message.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/table-reservation-web/internal/booking"
	"github.com/iliyamo/table-reservation-web/internal/model"
)

// ErrNotFound is returned by Load for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Data is what a session holds.  A nil User means nobody logged in as a
// customer.
type Data struct {
	User  *model.User  `json:"user,omitempty"`
	Admin bool         `json:"admin,omitempty"`
	Flow  booking.Flow `json:"flow"`
	Flash string       `json:"flash,omitempty"`
}

// TakeFlash returns the flash message and clears it.
func (d *Data) TakeFlash() string {
	msg := d.Flash
	d.Flash = ""
	return msg
}

// Store persists session data by session id.  Implementations must be safe
// for concurrent use.
type Store interface {
	Load(ctx context.Context, sid string) (*Data, error)
	Save(ctx context.Context, sid string, d *Data, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

// Package queue defines message payloads exchanged over the message broker.
package queue

// ActionQueue is the durable queue that carries ReservationActionEvent.
const ActionQueue = "reservation.actions"

// Actors of an action.
const (
	ActorAdmin    = "admin"
	ActorCustomer = "customer"
)

// ReservationActionEvent is published after the API accepted an action
// forwarded from one of the pages.  It carries enough for an audit trail
// without querying the API again.
type ReservationActionEvent struct {
	Action        string   `json:"action"` // accept | reject | delete | book | cancel
	Actor         string   `json:"actor"`  // admin | customer
	ReservationID uint64   `json:"reservation_id"`
	UserID        uint64   `json:"user_id,omitempty"`
	Username      string   `json:"username,omitempty"`
	Date          string   `json:"date,omitempty"`
	Time          string   `json:"time,omitempty"`
	TableIDs      []uint64 `json:"table_ids,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

// ListReservations returns every reservation (admin view).
func (c *Client) ListReservations(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := c.do(ctx, "list_reservations", http.MethodGet, "/api/reservations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus moves a reservation to Accepted or Rejected.  Other statuses
// are refused locally; the API only knows those two transitions.
func (c *Client) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
	if status != model.StatusAccepted && status != model.StatusRejected {
		return fmt.Errorf("update_status: unsupported status %q", status)
	}
	body := struct {
		Status model.Status `json:"status"`
	}{Status: status}
	return c.do(ctx, "update_status", http.MethodPut, fmt.Sprintf("/api/reservations/%d/status", id), body, nil)
}

func (c *Client) DeleteReservation(ctx context.Context, id uint64) error {
	return c.do(ctx, "delete_reservation", http.MethodDelete, fmt.Sprintf("/api/reservations/%d", id), nil, nil)
}

// ListTables returns every table with is_booked computed for the window.
func (c *Client) ListTables(ctx context.Context, date, tm string) ([]model.Table, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("time", tm)
	var out []model.Table
	if err := c.do(ctx, "list_tables", http.MethodGet, "/api/tables?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReservations lists the reservations of one user.
func (c *Client) MyReservations(ctx context.Context, userID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := c.do(ctx, "my_reservations", http.MethodGet, fmt.Sprintf("/api/my-reservations/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReservation books the selected tables and returns the id the
// server assigned.
func (c *Client) CreateReservation(ctx context.Context, req model.NewReservation) (uint64, error) {
	var out struct {
		ID uint64 `json:"id"`
	}
	if err := c.do(ctx, "create_reservation", http.MethodPost, "/api/reservations", req, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (c *Client) CancelReservation(ctx context.Context, id uint64) error {
	return c.do(ctx, "cancel_reservation", http.MethodPut, fmt.Sprintf("/api/reservations/%d/cancel", id), nil, nil)
}

package booking

import (
	"testing"
	"time"

	"github.com/iliyamo/table-reservation-web/internal/model"
)

func TestCancelable(t *testing.T) {
	now := time.Date(2026, 10, 18, 21, 45, 0, 0, time.UTC)
	cases := []struct {
		date   string
		status model.Status
		want   bool
	}{
		{"2026-10-18", model.StatusAccepted, true},
		{"2026-10-18", model.StatusPending, true},
		{"2026-10-17", model.StatusAccepted, false},
		{"2026-10-18", model.StatusRejected, false},
		{"2026-10-25", model.StatusCancelled, false},
		{"2027-01-01", model.StatusPending, true},
		{"not-a-date", model.StatusPending, false},
	}
	for _, tc := range cases {
		r := model.Reservation{ReservationDate: tc.date, Status: tc.status}
		if got := Cancelable(r, now); got != tc.want {
			t.Errorf("Cancelable(%s, %s) = %v, want %v", tc.date, tc.status, got, tc.want)
		}
	}
}

func TestCancelableUsesLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 2026-10-18 23:30 UTC is already the 19th at UTC+10.
	now := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC).In(loc)
	r := model.Reservation{ReservationDate: "2026-10-18", Status: model.StatusAccepted}
	if Cancelable(r, now) {
		t.Fatal("a booking dated yesterday in the local zone must not be cancelable")
	}
}

func TestCards(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cards := Cards([]model.Reservation{
		{ID: 1, ReservationDate: "2026-10-18", ReservationTime: "19:00", Status: model.StatusPending,
			BookedTables: []model.Table{{TableNumber: "A1"}}},
		{ID: 2, ReservationDate: "2026-10-01", ReservationTime: "18:00", Status: model.StatusAccepted},
	}, now)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if !cards[0].CanCancel || cards[0].When != "2026-10-18 at 19:00" || cards[0].StatusClass != "pending" {
		t.Fatalf("unexpected first card %+v", cards[0])
	}
	if cards[1].CanCancel {
		t.Fatalf("past booking must not be cancelable: %+v", cards[1])
	}
}

package handler_test

import (
	"bytes"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/table-reservation-web/internal/dashboard"
)

func reservationsAPI(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, []map[string]any{
		{"id": 1, "customer_name": "Alice", "contact_info": "555-0101", "reservation_date": "2026-10-20",
			"reservation_time": "19:00", "status": "Pending",
			"booked_tables": []map[string]any{{"id": 1, "table_number": "A1"}, {"id": 2, "table_number": "A2"}}},
		{"id": 2, "customer_name": "Bob", "contact_info": "555-0102", "reservation_date": "2026-10-21",
			"reservation_time": "20:00", "status": "Accepted"},
		{"id": 3, "customer_name": "Carol", "contact_info": "555-0103", "reservation_date": "2026-10-22",
			"reservation_time": "18:30", "status": "Rejected"},
		{"id": 4, "customer_name": "Dan", "contact_info": "555-0104", "reservation_date": "2026-10-23",
			"reservation_time": "18:00", "status": "Cancelled"},
	})
}

func TestDashboardRendersCountsAndActions(t *testing.T) {
	s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reservationsAPI(w) }))

	rec := s.do(t, http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	expectBody(t, rec,
		`id="all-bookings-count">4<`,
		`id="new-bookings-count">1<`,
		`id="accepted-bookings-count">1<`,
		`id="rejected-bookings-count">1<`,
		"2026-10-20 at 19:00",
		"A1, A2",
		`href="/admin/reservations/1/accept"`,
		`href="/admin/reservations/1/reject"`,
		`href="/admin/reservations/2/delete"`,
		`href="/admin/reservations/4/delete"`,
		`<span class="status cancelled">Cancelled</span>`,
	)
	body := rec.Body.String()
	if strings.Contains(body, `href="/admin/reservations/1/delete"`) || strings.Contains(body, `href="/admin/reservations/2/accept"`) {
		t.Fatal("wrong actions offered")
	}
}

func TestDashboardLoadError(t *testing.T) {
	s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db down"})
	}))
	rec := s.do(t, http.MethodGet, "/admin", nil)
	expectBody(t, rec, "Error loading data.", `id="all-bookings-count">0<`)
}

func TestAdminAcceptForwardsStatus(t *testing.T) {
	var got string
	s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && r.URL.Path == "/api/reservations/5/status" {
			got, _ = decodeBody(t, r)["status"].(string)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Status updated"})
			return
		}
		reservationsAPI(w)
	}))

	expectRedirect(t, s.do(t, http.MethodPost, "/admin/reservations/5/accept", url.Values{}), "/admin")
	if got != "Accepted" {
		t.Fatalf("status sent = %q", got)
	}
	if a := s.pub.actions(); len(a) != 1 || a[0] != "accept" {
		t.Fatalf("published %v", a)
	}
}

func TestAdminDeleteForwards(t *testing.T) {
	var deleted bool
	s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete && r.URL.Path == "/api/reservations/3" {
			deleted = true
			writeJSON(w, http.StatusOK, map[string]string{"message": "Reservation deleted"})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	expectRedirect(t, s.do(t, http.MethodPost, "/admin/reservations/3/delete", url.Values{}), "/admin")
	if !deleted {
		t.Fatal("delete not forwarded")
	}
}

func TestAdminActionFailureAlerts(t *testing.T) {
	tests := []struct {
		name string
		down bool
		want string
	}{
		{"api error", false, "Error: Reservation not found"},
		{"unreachable", true, "Could not connect to the server."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodPut {
					writeJSON(w, http.StatusNotFound, map[string]string{"error": "Reservation not found"})
					return
				}
				reservationsAPI(w)
			}))
			if tt.down {
				s.api.Close()
			}

			expectRedirect(t, s.do(t, http.MethodPost, "/admin/reservations/5/reject", url.Values{}), "/admin")
			if f := s.session(t).Flash; f != tt.want {
				t.Fatalf("flash = %q, want %q", f, tt.want)
			}
			if len(s.pub.actions()) != 0 {
				t.Fatal("failed action published")
			}

			rec := s.do(t, http.MethodGet, "/admin", nil)
			expectBody(t, rec, `role="alert">`+tt.want)
		})
	}
}

func TestAdminConfirmPages(t *testing.T) {
	s := newSite(t, http.NotFoundHandler())

	tests := []struct {
		target string
		want   string
	}{
		{"/admin/reservations/9/delete", "Are you sure you want to delete reservation #9?"},
		{"/admin/reservations/9/accept", "Are you sure you want to accept this booking?"},
		{"/admin/reservations/9/reject", "Are you sure you want to reject this booking?"},
	}
	for _, tt := range tests {
		rec := s.do(t, http.MethodGet, tt.target, nil)
		expectBody(t, rec, tt.want, `action="`+tt.target+`"`)
	}
}

func TestAdminRejectsUnknownRoutes(t *testing.T) {
	s := newSite(t, http.NotFoundHandler())
	for _, target := range []string{"/admin/reservations/5/archive", "/admin/reservations/abc/accept", "/admin/reservations/0/delete"} {
		if rec := s.do(t, http.MethodPost, target, url.Values{}); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: status = %d, want 404", target, rec.Code)
		}
	}
}

func TestAdminExport(t *testing.T) {
	s := newSite(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { reservationsAPI(w) }))

	rec := s.do(t, http.MethodGet, "/admin/export.xlsx", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "reservations-20261018-1200.xlsx") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	v, err := f.GetCellValue(dashboard.ExportSheet, "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if v != "Alice" {
		t.Fatalf("B2 = %q, want Alice", v)
	}
}

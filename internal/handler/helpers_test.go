package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/handler"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
	"github.com/iliyamo/table-reservation-web/internal/model"
	"github.com/iliyamo/table-reservation-web/internal/queue"
	"github.com/iliyamo/table-reservation-web/internal/router"
	"github.com/iliyamo/table-reservation-web/internal/session"
	"github.com/iliyamo/table-reservation-web/internal/utils"
	"github.com/iliyamo/table-reservation-web/internal/view"
)

// fixedNow is 2026-10-18 12:00 UTC.
var fixedNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type fakePublisher struct {
	mu     sync.Mutex
	events []queue.ReservationActionEvent
}

func (p *fakePublisher) PublishAction(_ context.Context, ev queue.ReservationActionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *fakePublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Action)
	}
	return out
}

type siteOpts struct {
	requireAdmin bool
}

// testSite is the whole web front-end wired against a fake API.
type testSite struct {
	e      *echo.Echo
	api    *httptest.Server
	store  *session.MemoryStore
	pub    *fakePublisher
	cookie *http.Cookie
}

func newSite(t *testing.T, api http.Handler) *testSite {
	t.Helper()
	return newSiteWith(t, api, siteOpts{})
}

func newSiteWith(t *testing.T, api http.Handler, opts siteOpts) *testSite {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	r, err := view.New()
	if err != nil {
		t.Fatalf("view.New: %v", err)
	}
	e := echo.New()
	e.Renderer = r

	client := apiclient.New(srv.URL, 2*time.Second)
	store := session.NewMemoryStore()
	sessions := &middleware.Sessions{Store: store, Key: testKey, TTL: time.Hour}
	site := config.DefaultSite()
	pub := &fakePublisher{}

	bh := handler.NewBookingHandler(client, sessions, site, time.UTC, pub)
	bh.Now = func() time.Time { return fixedNow }
	ah := handler.NewAdminHandler(client, sessions, site, pub)
	ah.Now = func() time.Time { return fixedNow }

	router.RegisterRoutes(e)
	g := router.NewSite(e, sessions, nil)
	router.RegisterAuth(g, handler.NewAuthHandler(client, sessions, site))
	router.RegisterBooking(g, bh)
	router.RegisterAdmin(g, ah, opts.requireAdmin)

	return &testSite{e: e, api: srv, store: store, pub: pub}
}

// do sends a request carrying the current session cookie and keeps any
// cookie the response sets.
func (s *testSite) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if s.cookie != nil {
		req.AddCookie(s.cookie)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			s.cookie = ck
		}
	}
	return rec
}

// loginAs seeds a session for u without going through the login form.
func (s *testSite) loginAs(t *testing.T, u model.User) {
	t.Helper()
	sid := utils.NewSessionID()
	if err := s.store.Save(context.Background(), sid, &session.Data{User: &u}, time.Hour); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	tok, err := utils.NewSessionToken(testKey, sid, time.Hour)
	if err != nil {
		t.Fatalf("session token: %v", err)
	}
	s.cookie = &http.Cookie{Name: middleware.CookieName, Value: tok.Token}
}

// session returns what the store holds for the current cookie.
func (s *testSite) session(t *testing.T) *session.Data {
	t.Helper()
	if s.cookie == nil {
		t.Fatal("no session cookie")
	}
	sid, err := utils.ParseSessionToken(testKey, s.cookie.Value)
	if err != nil {
		t.Fatalf("parse cookie: %v", err)
	}
	d, err := s.store.Load(context.Background(), sid)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	return d
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, to string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303; body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != to {
		t.Fatalf("Location = %q, want %q", got, to)
	}
}

func expectBody(t *testing.T, rec *httptest.ResponseRecorder, want ...string) {
	t.Helper()
	body := rec.Body.String()
	for _, w := range want {
		if !strings.Contains(body, w) {
			t.Fatalf("body does not contain %q:\n%s", w, body)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Errorf("decode request body: %v", err)
	}
	return m
}

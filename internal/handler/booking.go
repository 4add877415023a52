package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/booking"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/floorplan"
	"github.com/iliyamo/table-reservation-web/internal/metrics"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
	"github.com/iliyamo/table-reservation-web/internal/model"
	"github.com/iliyamo/table-reservation-web/internal/queue"
	"github.com/iliyamo/table-reservation-web/internal/view"
)

const (
	promptNoWindow    = "Please select a date and time to see available tables."
	promptLoadFailed  = "Could not load tables. Please try again."
	promptSelect      = "Please select one or more tables."
	msgNoBookings     = "You have no past or upcoming reservations."
	msgBookingsFailed = "Could not load your bookings."
	msgCancelFailed   = "Error cancelling reservation."
	msgCancelConfirm  = "Are you sure you want to cancel this reservation?"
)

// BookingHandler serves the customer's table picker and "my bookings".
type BookingHandler struct {
	API       *apiclient.Client
	Sessions  *middleware.Sessions
	Site      config.Site
	Location  *time.Location
	Publisher Publisher
	Now       func() time.Time
}

func NewBookingHandler(api *apiclient.Client, s *middleware.Sessions, site config.Site, loc *time.Location, pub Publisher) *BookingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BookingHandler{API: api, Sessions: s, Site: site, Location: loc, Publisher: pub, Now: time.Now}
}

type bookingForm struct {
	Name    string `form:"name"`
	Contact string `form:"contact"`
	Date    string `form:"date"`
	Time    string `form:"time"`
}

type bookingPage struct {
	Title           string
	Site            config.Site
	Username        string
	Date            string
	Time            string
	MinDate         string
	Prompt          string
	Cells           []floorplan.Cell
	SelectedCount   int
	Name            string
	Contact         string
	FormError       string
	Alert           string
	BookingsOpen    bool
	Bookings        []booking.Card
	BookingsMessage string
	BookingsURL     string
	CloseURL        string
}

func (h *BookingHandler) now() time.Time { return h.Now().In(h.Location) }

// windowQuery is the query string that keeps the page on a window.
func windowQuery(date, tm string) url.Values {
	q := url.Values{}
	if date != "" || tm != "" {
		q.Set("date", date)
		q.Set("time", tm)
	}
	return q
}

func pageURL(q url.Values) string {
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// Index renders the booking page.  Without date and time in the query the
// page keeps the session's window, or starts at the current date and time.
func (h *BookingHandler) Index(c echo.Context) error {
	flow := &middleware.Session(c).Flow
	q := c.QueryParams()
	date, tm := q.Get("date"), q.Get("time")
	if !q.Has("date") && !q.Has("time") {
		if flow.Date != "" || flow.Time != "" {
			date, tm = flow.Date, flow.Time
		} else {
			now := h.now()
			date, tm = now.Format(model.DateLayout), now.Format(model.TimeLayout)
		}
	}
	return h.show(c, date, tm, true, q.Get("bookings") == "open", bookingForm{}, "")
}

// show moves the session's flow to the window, draws the grid and renders
// the page.  It is shared by Index and a failed Submit.  Without fetch a
// grid already drawn for the window is reused and no request is made.
func (h *BookingHandler) show(c echo.Context, date, tm string, fetch, bookingsOpen bool, form bookingForm, formErr string) error {
	sess := middleware.Session(c)
	flow := &sess.Flow
	flow.SetWindow(date, tm)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	p := bookingPage{
		Title:     "Book a table",
		Site:      h.Site,
		Date:      flow.Date,
		Time:      flow.Time,
		MinDate:   h.now().Format(model.DateLayout),
		Name:      form.Name,
		Contact:   form.Contact,
		FormError: formErr,
	}
	if sess.User != nil {
		p.Username = sess.User.Username
	}

	switch {
	case !flow.HasWindow():
		p.Prompt = promptNoWindow
	case !fetch && flow.State() == booking.PhaseReady:
		p.Cells = flow.Redraw(h.Site.Layout)
		p.Prompt = promptSelect
	case !fetch && flow.State() == booking.PhaseFailed:
		p.Prompt = promptLoadFailed
	default:
		tables, err := h.API.ListTables(ctx, flow.Date, flow.Time)
		if err != nil {
			c.Logger().Warnf("booking: load tables %s %s: %v", flow.Date, flow.Time, err)
			flow.RenderFailed()
			p.Prompt = promptLoadFailed
			break
		}
		p.Cells = flow.Draw(h.Site.Layout, tables)
		p.Prompt = promptSelect
	}
	p.SelectedCount = len(flow.Selection)

	wq := windowQuery(flow.Date, flow.Time)
	p.CloseURL = pageURL(wq)
	bq := windowQuery(flow.Date, flow.Time)
	bq.Set("bookings", "open")
	p.BookingsURL = pageURL(bq)

	if bookingsOpen && sess.User != nil {
		p.BookingsOpen = true
		rs, err := h.API.MyReservations(ctx, sess.User.ID)
		switch {
		case err != nil:
			c.Logger().Warnf("booking: load bookings of user %d: %v", sess.User.ID, err)
			p.BookingsMessage = msgBookingsFailed
		case len(rs) == 0:
			p.BookingsMessage = msgNoBookings
		default:
			p.Bookings = booking.Cards(rs, h.now())
		}
	}

	p.Alert = sess.TakeFlash()
	if err := h.Sessions.Save(c); err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageBooking, p)
}

// Toggle flips one table of the current window in the selection.  Tables
// that were not available in the last grid are ignored.
func (h *BookingHandler) Toggle(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	date, tm := strings.TrimSpace(c.FormValue("date")), strings.TrimSpace(c.FormValue("time"))
	flow := &middleware.Session(c).Flow
	if flow.Date == date && flow.Time == tm {
		if flow.Toggle(id) {
			if err := h.Sessions.Save(c); err != nil {
				return err
			}
		}
	}
	return c.Redirect(http.StatusSeeOther, pageURL(windowQuery(date, tm)))
}

// Submit sends the reservation.  An empty selection, or a window whose grid
// failed to load, is refused locally and never reaches the API.
func (h *BookingHandler) Submit(c echo.Context) error {
	var f bookingForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	sess := middleware.Session(c)
	flow := &sess.Flow
	flow.SetWindow(f.Date, f.Time)

	if err := flow.BeginSubmit(); err != nil {
		metrics.IncAction("book", metrics.OutcomeInvalid)
		msg := booking.MsgEmptySelection
		switch {
		case errors.Is(err, booking.ErrNoWindow):
			msg = promptNoWindow
		case errors.Is(err, booking.ErrNotReady):
			msg = promptLoadFailed
		}
		return h.show(c, f.Date, f.Time, false, false, f, msg)
	}

	req := flow.Request(strings.TrimSpace(f.Name), strings.TrimSpace(f.Contact), *sess.User)
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	id, err := h.API.CreateReservation(ctx, req)
	metrics.IncAction("book", outcome(err))
	if err != nil {
		c.Logger().Warnf("booking: create for user %d: %v", sess.User.ID, err)
		flow.SubmitFailed()
		return h.show(c, f.Date, f.Time, true, false, f, "Error: "+apiclient.Message(err, msgUnknown))
	}

	publish(c, h.Publisher, queue.ReservationActionEvent{
		Action:        "book",
		Actor:         queue.ActorCustomer,
		ReservationID: id,
		UserID:        sess.User.ID,
		Username:      sess.User.Username,
		Date:          req.Date,
		Time:          req.Time,
		TableIDs:      req.TableIDs,
	})
	sess.Flash = fmt.Sprintf("Reservation Confirmed! Your Booking ID is #%d", id)
	flow.Reset()
	if err := h.Sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// ConfirmCancel asks before a reservation is cancelled.
func (h *BookingHandler) ConfirmCancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageConfirm, confirmPage{
		Title:   "Cancel reservation",
		Site:    h.Site,
		Message: msgCancelConfirm,
		Action:  fmt.Sprintf("/my-bookings/%d/cancel", id),
		Label:   "Cancel reservation",
		Back:    "/?bookings=open",
	})
}

// Cancel forwards the cancellation and reopens "my bookings".  Which
// reservations may be cancelled is up to the API; the page only hides the
// control.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	sess := middleware.Session(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	err = h.API.CancelReservation(ctx, id)
	metrics.IncAction("cancel", outcome(err))
	if err != nil {
		c.Logger().Warnf("booking: cancel #%d: %v", id, err)
		sess.Flash = msgCancelFailed
		if err := h.Sessions.Save(c); err != nil {
			return err
		}
	} else {
		publish(c, h.Publisher, queue.ReservationActionEvent{
			Action:        "cancel",
			Actor:         queue.ActorCustomer,
			ReservationID: id,
			UserID:        sess.User.ID,
			Username:      sess.User.Username,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/?bookings=open")
}

package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/dashboard"
	"github.com/iliyamo/table-reservation-web/internal/metrics"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
	"github.com/iliyamo/table-reservation-web/internal/queue"
	"github.com/iliyamo/table-reservation-web/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler serves the reservation dashboard.
type AdminHandler struct {
	API       *apiclient.Client
	Sessions  *middleware.Sessions
	Site      config.Site
	Publisher Publisher
	Now       func() time.Time
}

func NewAdminHandler(api *apiclient.Client, s *middleware.Sessions, site config.Site, pub Publisher) *AdminHandler {
	return &AdminHandler{API: api, Sessions: s, Site: site, Publisher: pub, Now: time.Now}
}

type adminPage struct {
	Title string
	Site  config.Site
	View  dashboard.View
}

// Dashboard fetches every reservation and renders the counters and the
// table.  A failed fetch still renders the page with a single error row.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var v dashboard.View
	rs, err := h.API.ListReservations(ctx)
	if err != nil {
		c.Logger().Warnf("admin: load reservations: %v", err)
		v = dashboard.FailedView()
	} else {
		v = dashboard.NewView(rs)
	}

	if v.Alert = middleware.Session(c).TakeFlash(); v.Alert != "" {
		if err := h.Sessions.Save(c); err != nil {
			return err
		}
	}
	return c.Render(http.StatusOK, view.PageAdmin, adminPage{Title: "Admin", Site: h.Site, View: v})
}

func actionParams(c echo.Context) (uint64, dashboard.Action, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return 0, "", err
	}
	a, ok := dashboard.ParseAction(c.Param("action"))
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return id, a, nil
}

// ConfirmAction asks before an accept, reject or delete is sent.
func (h *AdminHandler) ConfirmAction(c echo.Context) error {
	id, a, err := actionParams(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, view.PageConfirm, confirmPage{
		Title:   a.Label(),
		Site:    h.Site,
		Message: a.Confirmation(id),
		Action:  fmt.Sprintf("/admin/reservations/%d/%s", id, a),
		Label:   a.Label(),
		Back:    "/admin",
	})
}

// DoAction forwards a confirmed action and returns to the dashboard, which
// re-fetches the whole collection.  Failures become a one-shot alert.
func (h *AdminHandler) DoAction(c echo.Context) error {
	id, a, err := actionParams(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if status, ok := a.TargetStatus(); ok {
		err = h.API.UpdateStatus(ctx, id, status)
	} else {
		err = h.API.DeleteReservation(ctx, id)
	}
	metrics.IncAction(string(a), outcome(err))

	if err != nil {
		c.Logger().Warnf("admin: %s #%d: %v", a, id, err)
		middleware.Session(c).Flash = adminAlert(err)
		if err := h.Sessions.Save(c); err != nil {
			return err
		}
	} else {
		publish(c, h.Publisher, queue.ReservationActionEvent{
			Action:        string(a),
			Actor:         queue.ActorAdmin,
			ReservationID: id,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

func adminAlert(err error) string {
	if errors.Is(err, apiclient.ErrUnreachable) {
		return apiclient.ConnectMessage
	}
	return "Error: " + apiclient.Message(err, msgUnknown)
}

// Export downloads the reservations as an Excel workbook.
func (h *AdminHandler) Export(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	rs, err := h.API.ListReservations(ctx)
	if err != nil {
		c.Logger().Warnf("admin: export: %v", err)
		return echo.NewHTTPError(http.StatusBadGateway, "Error loading data.")
	}

	now := h.Now()
	var buf bytes.Buffer
	if err := dashboard.WriteWorkbook(&buf, rs, now); err != nil {
		return fmt.Errorf("export workbook: %w", err)
	}
	name := fmt.Sprintf("reservations-%s.xlsx", now.Format("20060102-1504"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

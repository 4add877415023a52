package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/apiclient"
	"github.com/iliyamo/table-reservation-web/internal/auth"
	"github.com/iliyamo/table-reservation-web/internal/config"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
	"github.com/iliyamo/table-reservation-web/internal/model"
	"github.com/iliyamo/table-reservation-web/internal/view"
)

const (
	msgRegistered = "Registration successful! Please login."
	msgUnknown    = "An unknown error occurred."
)

// AuthHandler bundles dependencies for the login page.
type AuthHandler struct {
	API      *apiclient.Client
	Sessions *middleware.Sessions
	Site     config.Site
}

func NewAuthHandler(api *apiclient.Client, s *middleware.Sessions, site config.Site) *AuthHandler {
	return &AuthHandler{API: api, Sessions: s, Site: site}
}

type loginPage struct {
	Title string
	Site  config.Site
	Auth  auth.Page
}

func (h *AuthHandler) render(c echo.Context, p auth.Page) error {
	return c.Render(http.StatusOK, view.PageLogin, loginPage{Title: "Login", Site: h.Site, Auth: p})
}

// ShowLogin renders the login page.  ?panel=register switches the active
// panel and ?admin=1 opens the admin dialog.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	p := auth.NewPage(auth.ParsePanel(c.QueryParam("panel")), c.QueryParam("admin") == "1")
	sess := middleware.Session(c)
	if p.Notice = sess.TakeFlash(); p.Notice != "" {
		if err := h.Sessions.Save(c); err != nil {
			return err
		}
	}
	return h.render(c, p)
}

// Register checks the confirmation locally and forwards the form to the
// API.  On success the visitor lands on the login panel with a notice.
func (h *AuthHandler) Register(c echo.Context) error {
	var f auth.RegisterForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	f.Username = strings.TrimSpace(f.Username)
	p := auth.NewPage(auth.PanelRegister, false)
	p.Register = f.Blank()

	if err := f.Validate(); err != nil {
		p.RegisterError = auth.MsgPasswordMismatch
		return h.render(c, p)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.API.Register(ctx, f.Registration()); err != nil {
		c.Logger().Warnf("register %q: %v", f.Username, err)
		p.RegisterError = apiclient.Message(err, msgUnknown)
		return h.render(c, p)
	}

	middleware.Session(c).Flash = msgRegistered
	if err := h.Sessions.Save(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/login?panel=login")
}

// LoginClient stores the returned user in a fresh session and sends the
// visitor to the booking page.
func (h *AuthHandler) LoginClient(c echo.Context) error {
	var f auth.LoginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	p := auth.NewPage(auth.PanelLogin, false)
	p.LoginUsername = f.Username

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	u, err := h.API.LoginClient(ctx, f.Credentials())
	if err != nil {
		c.Logger().Warnf("client login %q: %v", f.Username, err)
		p.LoginError = apiclient.Message(err, msgUnknown)
		return h.render(c, p)
	}

	sess := middleware.Session(c)
	sess.User = &model.User{ID: u.ID, Username: u.Username}
	sess.Flow.Reset()
	if err := h.Sessions.Renew(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// LoginAdmin flags the session as admin and opens the dashboard.  Failures
// re-render the page with the dialog still open.
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	var f auth.LoginForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	p := auth.NewPage(auth.PanelLogin, true)
	p.AdminUsername = f.Username

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.API.LoginAdmin(ctx, f.Credentials()); err != nil {
		c.Logger().Warnf("admin login %q: %v", f.Username, err)
		p.AdminError = apiclient.Message(err, msgUnknown)
		return h.render(c, p)
	}

	middleware.Session(c).Admin = true
	if err := h.Sessions.Renew(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin")
}

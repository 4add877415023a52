package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iliyamo/table-reservation-web/internal/handler"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
)

// RegisterRoutes registers the routes that need no session: the health
// check and the Prometheus scrape endpoint.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// NewSite returns the group every page lives in.  The session is loaded
// before the rate limiter so the limiter can key on the logged-in user.
func NewSite(e *echo.Echo, s *middleware.Sessions, limit echo.MiddlewareFunc) *echo.Group {
	mw := []echo.MiddlewareFunc{s.Middleware()}
	if limit != nil {
		mw = append(mw, limit)
	}
	return e.Group("", mw...)
}

// RegisterAuth registers the login page and its three forms.  None of them
// require an existing session.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler) {
	g.GET("/login", a.ShowLogin)
	g.POST("/register", a.Register)
	g.POST("/login/client", a.LoginClient)
	g.POST("/login/admin", a.LoginAdmin)
}

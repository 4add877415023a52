package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/handler"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
)

// RegisterAdmin registers the dashboard under /admin.  When requireLogin is
// set the group only admits sessions flagged by a successful admin login.
func RegisterAdmin(g *echo.Group, h *handler.AdminHandler, requireLogin bool) {
	a := g.Group("/admin", middleware.RequireAdmin(requireLogin, "/login?admin=1"))

	a.GET("", h.Dashboard)
	a.GET("/export.xlsx", h.Export)
	a.GET("/reservations/:id/:action", h.ConfirmAction)
	a.POST("/reservations/:id/:action", h.DoAction)
}

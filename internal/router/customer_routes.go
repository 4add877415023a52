package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation-web/internal/handler"
	"github.com/iliyamo/table-reservation-web/internal/middleware"
)

// RegisterBooking registers the customer pages.  Every route requires a
// customer in the session; visitors without one are sent to /login.
func RegisterBooking(g *echo.Group, h *handler.BookingHandler) {
	customer := middleware.RequireCustomer("/login")

	g.GET("/", h.Index, customer)
	g.POST("/tables/:id/toggle", h.Toggle, customer)
	g.POST("/reservations", h.Submit, customer)

	// Cancelling asks first, then posts back to the same path.
	g.GET("/my-bookings/:id/cancel", h.ConfirmCancel, customer)
	g.POST("/my-bookings/:id/cancel", h.Cancel, customer)
}

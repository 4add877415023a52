package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health answers load balancer probes.  It does not call the reservation
// API: the pages degrade on their own when the API is down.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

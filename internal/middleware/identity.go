package middleware

// identity.go defines helpers shared across middleware files. userID pulls
// the customer id of the current session; visitors without a customer login
// are reported as "guest".

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the session stored in context.
func userID(c echo.Context) string {
	if u := Session(c).User; u != nil {
		return strconv.FormatUint(u.ID, 10)
	}
	if v, ok := c.Get("user_id").(string); ok && v != "" {
		return v
	}
	return "guest"
}

package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireCustomer redirects to loginPath when the session holds no
// customer.  This mirrors the booking page's only access check; the API
// remains the authority on what a caller may do.
func RequireCustomer(loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Session(c).User == nil {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

// RequireAdmin redirects to loginPath unless the session carries the admin
// flag set by a successful admin login.  When enabled is false the
// middleware lets every request through.
func RequireAdmin(enabled bool, loginPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !enabled {
			return next
		}
		return func(c echo.Context) error {
			if !Session(c).Admin {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

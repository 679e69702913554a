package webapp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mvoronov/storefront/internal/session"
)

// RequireLogin redirects anonymous visitors to the login page. A token
// without a verified user counts as anonymous.
func RequireLogin(sess *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess.User() == nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}

// RequireAdmin sends non-admins back to the storefront.
func RequireAdmin(sess *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !sess.User().IsAdmin() {
				return c.Redirect(http.StatusSeeOther, "/")
			}
			return next(c)
		}
	}
}

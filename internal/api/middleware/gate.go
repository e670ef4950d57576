package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	dashboardPrefix = "/dashboard"
	authPrefix      = "/auth"
	loginPath       = "/auth/login"
)

// AccessGate is the coarse edge check in front of the dashboard pages: a
// request under /dashboard without the session cookie is redirected to the
// login page before any handler runs. It checks presence only; handlers
// still verify ownership on every resource access.
func AccessGate(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			if path == "/" || strings.HasPrefix(path, authPrefix) {
				return next(c)
			}

			if strings.HasPrefix(path, dashboardPrefix) {
				log.Debug().Str("path", path).Msg("access gate")
				cookie, err := c.Cookie(SessionCookie)
				if err != nil || cookie.Value == "" {
					return c.Redirect(http.StatusSeeOther, loginPath)
				}
			}

			return next(c)
		}
	}
}

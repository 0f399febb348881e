package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/config"
)

const csrfHeader = "X-CSRF-Token"

// CSRFMiddleware enforces the double-submit cookie scheme: state-changing
// requests must echo the csrf cookie value in the X-CSRF-Token header.
// Safe methods pass through untouched.
func CSRFMiddleware(cfg config.AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch c.Request().Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			cookie, err := c.Cookie(cfg.CSRFCookieName)
			if err != nil || cookie.Value == "" {
				return forbiddenCSRF(c)
			}

			header := c.Request().Header.Get(csrfHeader)
			if header == "" {
				return forbiddenCSRF(c)
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
				return forbiddenCSRF(c)
			}

			return next(c)
		}
	}
}

func forbiddenCSRF(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"error":   "error",
		"code":    "FORBIDDEN",
		"message": "missing or invalid CSRF token",
	})
}

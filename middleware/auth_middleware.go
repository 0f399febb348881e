package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/config"
	"lector/domain"
	"lector/usecase"
	"lector/utils/logger"
)

// SessionAuth verifies the session cookie and plants the resulting
// UserContext in the request context. Requests without a valid session
// get 401 with no detail about why.
func SessionAuth(auth *usecase.AuthUsecase, cfg config.AuthConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cfg.SessionCookieName)
			if err != nil || cookie.Value == "" {
				return unauthorizedResponse(c)
			}

			userCtx, err := auth.Verify(c.Request().Context(), cookie.Value)
			if err != nil {
				return unauthorizedResponse(c)
			}

			ctx := context.WithValue(c.Request().Context(), domain.UserContextKey, userCtx)
			ctx = context.WithValue(ctx, logger.UserIDKey, userCtx.UserID.String())
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func unauthorizedResponse(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":   "error",
		"code":    "UNAUTHORIZED",
		"message": "authentication required",
	})
}

package rest

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lector/config"
	"lector/di"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

func registerAuthRoutes(public, private *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	public.POST("/auth/register", func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "register")
		}

		user, err := container.AuthUsecase.Register(c.Request().Context(), req.Username, req.Password)
		if err != nil {
			return handleError(c, err, "register")
		}

		return c.JSON(http.StatusCreated, map[string]interface{}{
			"message": "account created",
			"user":    user.Public(),
		})
	})

	public.POST("/auth/login", func(c echo.Context) error {
		var req credentialsRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "login")
		}

		ip := container.IPResolver.ClientIP(c.Request())
		result, err := container.AuthUsecase.Login(c.Request().Context(),
			req.Username, req.Password, c.Request().UserAgent(), ip)
		if err != nil {
			return handleError(c, err, "login")
		}

		maxAge := int((time.Duration(cfg.Auth.SessionTimeoutDays) * 24 * time.Hour).Seconds())
		c.SetCookie(sessionCookie(cfg.Auth, result.CookieValue, maxAge))
		c.SetCookie(csrfCookie(cfg.Auth, result.CSRFToken, maxAge))

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":    "logged in",
			"user":       result.User.Public(),
			"csrf_token": result.CSRFToken,
		})
	})

	private.POST("/auth/logout", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "logout")
		}

		if err := container.AuthUsecase.Logout(c.Request().Context(), user.UserID, user.SessionID); err != nil {
			return handleError(c, err, "logout")
		}

		c.SetCookie(sessionCookie(cfg.Auth, "", -1))
		c.SetCookie(csrfCookie(cfg.Auth, "", -1))

		return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
	})

	private.POST("/auth/change-password", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "change_password")
		}

		var req changePasswordRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "change_password")
		}

		err = container.AuthUsecase.ChangePassword(c.Request().Context(),
			user.UserID, req.CurrentPassword, req.NewPassword)
		if err != nil {
			return handleError(c, err, "change_password")
		}

		// Every session is revoked, this one included.
		c.SetCookie(sessionCookie(cfg.Auth, "", -1))
		c.SetCookie(csrfCookie(cfg.Auth, "", -1))

		return c.JSON(http.StatusOK, map[string]string{"message": "password changed"})
	})

	private.GET("/auth/sessions", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "list_sessions")
		}

		sessions, err := container.AuthUsecase.ListSessions(c.Request().Context(), user.UserID, user.SessionID)
		if err != nil {
			return handleError(c, err, "list_sessions")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"sessions": sessions})
	})

	private.DELETE("/auth/sessions/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "revoke_session")
		}

		sessionID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid session id")
		}

		if err := container.AuthUsecase.RevokeSession(c.Request().Context(), user.UserID, sessionID); err != nil {
			return handleError(c, err, "revoke_session")
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "session revoked"})
	})
}

func sessionCookie(cfg config.AuthConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

// The CSRF cookie is readable by the frontend so it can echo the value
// in the X-CSRF-Token header.
func csrfCookie(cfg config.AuthConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CSRFCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: false,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}

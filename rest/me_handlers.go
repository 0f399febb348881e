package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/di"
)

type profileUpdateRequest struct {
	Username string `json:"username" validate:"required,username"`
}

func registerMeRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/me", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "me")
		}

		profile, err := container.AuthUsecase.Profile(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "me")
		}

		return c.JSON(http.StatusOK, profile)
	})

	v1.PUT("/me", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "update_me")
		}

		var req profileUpdateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "update_me")
		}

		profile, err := container.AuthUsecase.UpdateProfile(c.Request().Context(), user.UserID, req.Username)
		if err != nil {
			return handleError(c, err, "update_me")
		}

		return c.JSON(http.StatusOK, profile)
	})

	v1.GET("/me/preferences", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "get_preferences")
		}

		prefs, err := container.PreferencesUsecase.Get(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "get_preferences")
		}

		return c.JSON(http.StatusOK, prefs)
	})

	v1.PUT("/me/preferences", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "update_preferences")
		}

		var patch map[string]interface{}
		if err := c.Bind(&patch); err != nil {
			return badRequest(c, "invalid request body")
		}

		prefs, err := container.PreferencesUsecase.Update(c.Request().Context(), user.UserID, patch)
		if err != nil {
			return handleError(c, err, "update_preferences")
		}

		return c.JSON(http.StatusOK, prefs)
	})
}

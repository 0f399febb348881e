package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/di"
)

type tagRequest struct {
	Name string `json:"name" validate:"required"`
}

func registerTagRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/tags", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "list_tags")
		}

		limit := intQuery(c, "limit", 50)
		offset := intQuery(c, "offset", 0)

		tags, total, err := container.TagUsecase.List(c.Request().Context(), user.UserID, limit, offset)
		if err != nil {
			return handleError(c, err, "list_tags")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"tags":   tags,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	})

	v1.POST("/tags", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "create_tag")
		}

		var req tagRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "create_tag")
		}

		tag, err := container.TagUsecase.Create(c.Request().Context(), user.UserID, req.Name)
		if err != nil {
			return handleError(c, err, "create_tag")
		}

		return c.JSON(http.StatusCreated, tag)
	})

	v1.GET("/tags/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "get_tag")
		}

		tagID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid tag id")
		}

		tag, err := container.TagUsecase.Get(c.Request().Context(), user.UserID, tagID)
		if err != nil {
			return handleError(c, err, "get_tag")
		}

		return c.JSON(http.StatusOK, tag)
	})

	v1.PUT("/tags/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "rename_tag")
		}

		tagID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid tag id")
		}

		var req tagRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		tag, err := container.TagUsecase.Rename(c.Request().Context(), user.UserID, tagID, req.Name)
		if err != nil {
			return handleError(c, err, "rename_tag")
		}

		return c.JSON(http.StatusOK, tag)
	})

	v1.DELETE("/tags/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "delete_tag")
		}

		tagID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid tag id")
		}

		if err := container.TagUsecase.Delete(c.Request().Context(), user.UserID, tagID); err != nil {
			return handleError(c, err, "delete_tag")
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "tag deleted"})
	})
}

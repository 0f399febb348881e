package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/di"
	"lector/domain"
)

func registerSearchRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/search", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "search")
		}

		results, err := container.SearchUsecase.Universal(c.Request().Context(), user.UserID, c.QueryParam("q"))
		if err != nil {
			return handleError(c, err, "search")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
	})

	perType := map[string]domain.SearchType{
		"/search/articles": domain.SearchTypeArticle,
		"/search/feeds":    domain.SearchTypeFeed,
		"/search/tags":     domain.SearchTypeTag,
		"/search/folders":  domain.SearchTypeFolder,
	}
	for path, searchType := range perType {
		searchType := searchType
		v1.GET(path, func(c echo.Context) error {
			user, err := currentUser(c)
			if err != nil {
				return handleError(c, err, "search")
			}

			page, err := container.SearchUsecase.SearchType(c.Request().Context(),
				user.UserID, searchType, c.QueryParam("q"),
				intQuery(c, "limit", 20), intQuery(c, "offset", 0))
			if err != nil {
				return handleError(c, err, "search")
			}

			return c.JSON(http.StatusOK, page)
		})
	}
}

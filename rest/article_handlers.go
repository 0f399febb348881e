package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lector/di"
	"lector/domain"
)

type articleUpdateRequest struct {
	IsRead    *bool        `json:"is_read,omitempty"`
	ReadLater *bool        `json:"read_later,omitempty"`
	TagIDs    *[]uuid.UUID `json:"tag_ids,omitempty"`
}

type bulkMarkReadRequest struct {
	SubscriptionIDs []uuid.UUID `json:"subscription_ids,omitempty"`
	FolderIDs       []uuid.UUID `json:"folder_ids,omitempty"`
	TagIDs          []uuid.UUID `json:"tag_ids,omitempty"`
	Before          *time.Time  `json:"before,omitempty"`
}

func registerArticleRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/articles", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "list_articles")
		}

		filter, err := articleFilterFromQuery(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		limit := intQuery(c, "limit", 50)
		page, err := container.ArticleUsecase.List(c.Request().Context(),
			user.UserID, filter, c.QueryParam("cursor"), limit)
		if err != nil {
			return handleError(c, err, "list_articles")
		}

		return c.JSON(http.StatusOK, page)
	})

	v1.GET("/articles/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "get_article")
		}

		articleID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid article id")
		}

		view, err := container.ArticleUsecase.Get(c.Request().Context(), user.UserID, articleID)
		if err != nil {
			return handleError(c, err, "get_article")
		}

		return c.JSON(http.StatusOK, view)
	})

	v1.PUT("/articles/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "update_article")
		}

		articleID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid article id")
		}

		var req articleUpdateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		ctx := c.Request().Context()
		response := map[string]interface{}{"message": "article updated"}

		if req.IsRead != nil {
			if err := container.ArticleUsecase.SetRead(ctx, user.UserID, articleID, *req.IsRead); err != nil {
				return handleError(c, err, "update_article")
			}
		}
		if req.ReadLater != nil {
			if err := container.ArticleUsecase.SetReadLater(ctx, user.UserID, articleID, *req.ReadLater); err != nil {
				return handleError(c, err, "update_article")
			}
		}
		if req.TagIDs != nil {
			sync, err := container.ArticleUsecase.SyncTags(ctx, user.UserID, articleID, *req.TagIDs)
			if err != nil {
				return handleError(c, err, "update_article")
			}
			response["tags"] = sync
		}

		return c.JSON(http.StatusOK, response)
	})

	v1.POST("/articles/mark-as-read", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "bulk_mark_read")
		}

		var req bulkMarkReadRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		filter := domain.ArticleFilter{
			SubscriptionIDs: req.SubscriptionIDs,
			FolderIDs:       req.FolderIDs,
			TagIDs:          req.TagIDs,
			ToDate:          req.Before,
		}

		updated, err := container.ArticleUsecase.BulkMarkRead(c.Request().Context(), user.UserID, filter)
		if err != nil {
			return handleError(c, err, "bulk_mark_read")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "articles marked as read",
			"updated": updated,
		})
	})
}

func articleFilterFromQuery(c echo.Context) (domain.ArticleFilter, error) {
	var filter domain.ArticleFilter
	var err error

	if filter.SubscriptionIDs, err = uuidListQuery(c, "subscription_ids"); err != nil {
		return filter, err
	}
	if filter.TagIDs, err = uuidListQuery(c, "tag_ids"); err != nil {
		return filter, err
	}
	if filter.FolderIDs, err = uuidListQuery(c, "folder_ids"); err != nil {
		return filter, err
	}
	if filter.IsRead, err = boolQuery(c, "is_read"); err != nil {
		return filter, err
	}
	if filter.ReadLater, err = boolQuery(c, "read_later"); err != nil {
		return filter, err
	}
	if filter.FromDate, err = dateQuery(c, "from_date"); err != nil {
		return filter, err
	}
	if filter.ToDate, err = dateQuery(c, "to_date"); err != nil {
		return filter, err
	}
	filter.Query = strings.TrimSpace(c.QueryParam("q"))

	return filter, nil
}

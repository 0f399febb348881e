package rest

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lector/di"
	"lector/usecase"
)

type discoverRequest struct {
	URL      string     `json:"url" validate:"required,feed_url"`
	FolderID *uuid.UUID `json:"folder_id,omitempty"`
}

type subscriptionUpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	FolderID    *uuid.UUID `json:"folder_id,omitempty"`
	ClearFolder bool       `json:"clear_folder,omitempty"`
	IsPinned    *bool      `json:"is_pinned,omitempty"`
}

func registerFeedRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/feeds", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "list_feeds")
		}

		var folderID *uuid.UUID
		if raw := strings.TrimSpace(c.QueryParam("folder_id")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return badRequest(c, "invalid folder id")
			}
			folderID = &id
		}

		limit := intQuery(c, "limit", 50)
		offset := intQuery(c, "offset", 0)
		sortOrder := c.QueryParam("sort")

		subs, total, err := container.SubscriptionUsecase.List(c.Request().Context(),
			user.UserID, folderID, sortOrder, limit, offset)
		if err != nil {
			return handleError(c, err, "list_feeds")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"feeds":  subs,
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	})

	v1.PUT("/feeds/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "update_feed")
		}

		subscriptionID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid subscription id")
		}

		var req subscriptionUpdateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		sub, err := container.SubscriptionUsecase.Update(c.Request().Context(),
			user.UserID, subscriptionID, usecase.SubscriptionUpdate{
				Title:       req.Title,
				FolderID:    req.FolderID,
				ClearFolder: req.ClearFolder,
				IsPinned:    req.IsPinned,
			})
		if err != nil {
			return handleError(c, err, "update_feed")
		}

		return c.JSON(http.StatusOK, sub)
	})

	v1.DELETE("/feeds/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "unsubscribe")
		}

		subscriptionID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid subscription id")
		}

		if err := container.SubscriptionUsecase.Unsubscribe(c.Request().Context(), user.UserID, subscriptionID); err != nil {
			return handleError(c, err, "unsubscribe")
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "unsubscribed"})
	})

	v1.POST("/discover", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "discover")
		}

		var req discoverRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "discover")
		}

		result, err := container.DiscoverUsecase.Discover(c.Request().Context(),
			user.UserID, req.URL, req.FolderID)
		if err != nil {
			return handleError(c, err, "discover")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":       result.Outcome,
			"subscription": result.Subscription,
			"job_id":       result.JobID,
		})
	})
}

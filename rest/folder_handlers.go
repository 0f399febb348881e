package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lector/di"
	"lector/usecase"
)

type folderCreateRequest struct {
	Name     string     `json:"name" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type folderUpdateRequest struct {
	Name       *string    `json:"name,omitempty"`
	ParentID   *uuid.UUID `json:"parent_id,omitempty"`
	MoveToRoot bool       `json:"move_to_root,omitempty"`
	IsPinned   *bool      `json:"is_pinned,omitempty"`
}

func registerFolderRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/folders", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "list_folders")
		}

		folders, err := container.FolderUsecase.List(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "list_folders")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"folders": folders})
	})

	v1.GET("/folders/tree", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "folder_tree")
		}

		tree, err := container.FolderUsecase.Tree(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "folder_tree")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"tree": tree})
	})

	v1.GET("/folders/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "get_folder")
		}

		folderID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid folder id")
		}

		folder, err := container.FolderUsecase.Get(c.Request().Context(), user.UserID, folderID)
		if err != nil {
			return handleError(c, err, "get_folder")
		}

		return c.JSON(http.StatusOK, folder)
	})

	v1.POST("/folders", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "create_folder")
		}

		var req folderCreateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return handleError(c, err, "create_folder")
		}

		folder, err := container.FolderUsecase.Create(c.Request().Context(), user.UserID, req.Name, req.ParentID)
		if err != nil {
			return handleError(c, err, "create_folder")
		}

		return c.JSON(http.StatusCreated, folder)
	})

	v1.PUT("/folders/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "update_folder")
		}

		folderID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid folder id")
		}

		var req folderUpdateRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}

		folder, err := container.FolderUsecase.Update(c.Request().Context(),
			user.UserID, folderID, usecase.FolderUpdate{
				Name:       req.Name,
				ParentID:   req.ParentID,
				MoveToRoot: req.MoveToRoot,
				IsPinned:   req.IsPinned,
			})
		if err != nil {
			return handleError(c, err, "update_folder")
		}

		return c.JSON(http.StatusOK, folder)
	})

	v1.DELETE("/folders/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "delete_folder")
		}

		folderID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid folder id")
		}

		if err := container.FolderUsecase.Delete(c.Request().Context(), user.UserID, folderID); err != nil {
			return handleError(c, err, "delete_folder")
		}

		return c.JSON(http.StatusOK, map[string]string{"message": "folder deleted"})
	})
}

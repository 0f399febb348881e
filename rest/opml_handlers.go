package rest

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lector/di"
)

func registerOpmlRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.POST("/opml/upload", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_upload")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "missing file field")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return badRequest(c, "unreadable upload")
		}
		defer src.Close()

		content, err := io.ReadAll(io.LimitReader(src, fileHeader.Size))
		if err != nil {
			return badRequest(c, "unreadable upload")
		}

		record, err := container.OpmlUsecase.Upload(c.Request().Context(), user.UserID, fileHeader.Filename, content)
		if err != nil {
			return handleError(c, err, "opml_upload")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":   "import queued",
			"import_id": record.ID,
			"status":    record.Status,
		})
	})

	v1.GET("/opml/status/:id", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_status")
		}

		importID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid import id")
		}

		record, err := container.OpmlUsecase.Status(c.Request().Context(), user.UserID, importID)
		if err != nil {
			return handleError(c, err, "opml_status")
		}

		return c.JSON(http.StatusOK, record)
	})

	v1.GET("/opml/imports", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_imports")
		}

		imports, err := container.OpmlUsecase.ListImports(c.Request().Context(), user.UserID, intQuery(c, "limit", 20))
		if err != nil {
			return handleError(c, err, "opml_imports")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"imports": imports})
	})

	v1.POST("/opml/:id/rollback", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_rollback")
		}

		importID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid import id")
		}

		removed, err := container.OpmlUsecase.Rollback(c.Request().Context(), user.UserID, importID)
		if err != nil {
			return handleError(c, err, "opml_rollback")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": rollbackMessage(removed),
			"removed": removed,
		})
	})

	v1.POST("/opml/export", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_export")
		}

		record, err := container.OpmlUsecase.RequestExport(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "opml_export")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"message": "export queued",
			"job_id":  record.ID,
		})
	})

	v1.GET("/opml/download/:filename", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "opml_download")
		}

		filename := c.Param("filename")
		if strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
			return badRequest(c, "invalid filename")
		}

		reader, err := container.OpmlUsecase.Download(c.Request().Context(), user.UserID)
		if err != nil {
			return handleError(c, err, "opml_download")
		}
		defer reader.Close()

		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
		return c.Stream(http.StatusOK, "text/x-opml", reader)
	})
}

func rollbackMessage(removed int64) string {
	if removed == 1 {
		return "Rolled back 1 subscription"
	}
	return fmt.Sprintf("Rolled back %d subscriptions", removed)
}

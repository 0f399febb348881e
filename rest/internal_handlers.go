package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lector/di"
	"lector/domain"
)

// Job types that the ops API may trigger ad hoc. User-addressed jobs
// (subscribe, OPML) carry payloads the API has no business fabricating.
var triggerableJobs = map[string]domain.JobType{
	"refresh-cycle":  domain.JobFeedRefreshCycle,
	"cleanup":        domain.JobFeedCleanup,
	"auto-mark-read": domain.JobAutoMarkRead,
}

func registerInternalRoutes(internal *echo.Group, container *di.ApplicationComponents) {
	internal.POST("/jobs/:type", func(c echo.Context) error {
		jobType, ok := triggerableJobs[c.Param("type")]
		if !ok {
			return badRequest(c, "unknown or non-triggerable job type")
		}

		record, err := container.JobUsecase.Publish(c.Request().Context(), jobType, nil)
		if err != nil {
			return handleError(c, err, "trigger_job")
		}

		return c.JSON(http.StatusAccepted, record)
	})

	internal.GET("/jobs/:id", func(c echo.Context) error {
		jobID, err := uuidParam(c, "id")
		if err != nil {
			return badRequest(c, "invalid job id")
		}

		record, err := container.JobUsecase.Get(c.Request().Context(), jobID)
		if err != nil {
			return handleError(c, err, "job_status")
		}

		return c.JSON(http.StatusOK, record)
	})

	internal.GET("/feeds", func(c echo.Context) error {
		feeds, err := container.FeedUsecase.ListAll(c.Request().Context(),
			intQuery(c, "limit", 50), intQuery(c, "offset", 0))
		if err != nil {
			return handleError(c, err, "list_all_feeds")
		}

		return c.JSON(http.StatusOK, map[string]interface{}{"feeds": feeds})
	})
}

package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lector/di"
)

const healthCheckBudget = 2 * time.Second

func registerHealthRoutes(v1 *echo.Group, container *di.ApplicationComponents) {
	v1.GET("/health", func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckBudget)
		defer cancel()

		checks := map[string]string{
			"postgres": "ok",
			"redis":    "ok",
		}
		status := "healthy"

		if err := container.Pool.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			status = "degraded"
		}
		if err := container.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			status = "degraded"
		}

		code := http.StatusOK
		if status != "healthy" {
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	})
}

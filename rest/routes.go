package rest

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lector/config"
	"lector/di"
	custommiddleware "lector/middleware"
	"lector/utils/logger"
	"lector/utils/validator"
)

// RegisterRoutes installs the middleware chain and every route group on
// the echo instance.
func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	e.Validator = validator.New()

	e.Use(custommiddleware.RequestIDMiddleware())
	e.Use(echomiddleware.Recover())

	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Production deployments serve the frontend same-origin; cross-origin
	// access with cookies is a dev-only affordance.
	if cfg.Server.DevMode {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOriginFunc:  func(origin string) (bool, error) { return true, nil },
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderContentType, "X-CSRF-Token", "X-Request-ID",
			},
		}))
	}

	e.Use(echomiddleware.BodyLimit("20M"))

	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
		Skipper: func(c echo.Context) bool {
			// Streaming endpoints outlive the request budget by design.
			return strings.HasPrefix(c.Path(), "/v1/events")
		},
	}))

	e.Use(custommiddleware.LoggingMiddleware(logger.Logger))
	if cfg.Metrics.Enabled {
		e.Use(custommiddleware.MetricsMiddleware(container.Metrics))
	}

	e.Use(echomiddleware.GzipWithConfig(echomiddleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/v1/events") ||
				c.Path() == "/v1/health" ||
				c.Path() == "/metrics"
		},
	}))

	if cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
			container.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	v1 := e.Group("/v1")
	registerHealthRoutes(v1, container)

	private := v1.Group("",
		custommiddleware.SessionAuth(container.AuthUsecase, cfg.Auth),
		custommiddleware.CSRFMiddleware(cfg.Auth),
	)

	// Register and login hang off the public group; session-scoped auth
	// operations require the cookie plus the CSRF header echo.
	registerAuthRoutes(v1, private, container, cfg)
	registerArticleRoutes(private, container)
	registerFeedRoutes(private, container)
	registerFolderRoutes(private, container)
	registerTagRoutes(private, container)
	registerOpmlRoutes(private, container)
	registerSearchRoutes(private, container)
	registerMeRoutes(private, container)
	registerSSERoutes(private, container, cfg.Server.SSEKeepalive)

	internal := e.Group("/internal/v1",
		custommiddleware.ServiceAuth(cfg.Auth.ServiceTokenSecret, cfg.Server.DevMode))
	registerInternalRoutes(internal, container)
}

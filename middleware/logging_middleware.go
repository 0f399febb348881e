package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"lector/metrics"
	"lector/utils/logger"
)

// LoggingMiddleware records one structured line per request. The health
// endpoint is skipped to keep probe noise out of the logs.
func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	contextLogger := logger.NewContextLogger(baseLogger)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.URL.Path == "/v1/health" || req.URL.Path == "/metrics" {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			ctx := req.Context()
			status := c.Response().Status

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", status,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", c.RealIP(),
			}
			switch {
			case status >= 500:
				contextLogger.WithContext(ctx).ErrorContext(ctx, "request completed", attrs...)
			case status >= 400:
				contextLogger.WithContext(ctx).WarnContext(ctx, "request completed", attrs...)
			default:
				contextLogger.WithContext(ctx).InfoContext(ctx, "request completed", attrs...)
			}

			return err
		}
	}
}

// MetricsMiddleware feeds the HTTP request counter and latency histogram.
// Routes are labelled by their registered pattern, not the raw path, so
// IDs do not blow up the label cardinality.
func MetricsMiddleware(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}

			m.HTTPRequestsTotal.WithLabelValues(
				route, c.Request().Method, strconv.Itoa(c.Response().Status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(
				route, c.Request().Method).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

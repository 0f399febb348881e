package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lector/di"
)

// registerSSERoutes wires the notification stream. One subscription per
// connected client; the pub/sub channel is torn down when the client
// goes away.
func registerSSERoutes(v1 *echo.Group, container *di.ApplicationComponents, keepalive time.Duration) {
	v1.GET("/events", func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return handleError(c, err, "events")
		}

		ctx := c.Request().Context()
		notifications, err := container.Notifier.Subscribe(ctx, user.UserID)
		if err != nil {
			return handleError(c, err, "events")
		}

		response := c.Response()
		response.Header().Set(echo.HeaderContentType, "text/event-stream")
		response.Header().Set("Cache-Control", "no-cache")
		response.Header().Set("Connection", "keep-alive")
		response.WriteHeader(http.StatusOK)
		response.Flush()

		ticker := time.NewTicker(keepalive)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil

			case notification, ok := <-notifications:
				if !ok {
					return nil
				}
				payload, err := json.Marshal(notification)
				if err != nil {
					continue
				}
				if _, err := fmt.Fprintf(response, "data: %s\n\n", payload); err != nil {
					return nil
				}
				response.Flush()

			case <-ticker.C:
				// Comment frames keep intermediaries from closing the
				// connection during quiet periods.
				if _, err := fmt.Fprint(response, ": keepalive\n\n"); err != nil {
					return nil
				}
				response.Flush()
			}
		}
	})
}

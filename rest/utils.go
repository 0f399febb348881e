// Package rest exposes the HTTP surface over echo: auth, articles,
// subscriptions, discovery, folders, tags, OPML, search, preferences,
// SSE events and the internal ops API.
package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"lector/domain"
	apperrors "lector/utils/errors"
	"lector/utils/logger"
	"lector/utils/validator"
)

// handleError maps an error to its HTTP response. Context errors carry
// their own status; domain sentinels are translated here so the usecase
// layer never needs to know about HTTP.
func handleError(c echo.Context, err error, operation string) error {
	var validationErr *validator.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   "error",
			"code":    "VALIDATION_ERROR",
			"message": validationErr.Error(),
			"fields":  validationErr.Errors,
		})
	}

	var appErr *apperrors.AppContextError
	if errors.As(err, &appErr) {
		logger.GlobalContext.WithContext(c.Request().Context()).Warn("request failed",
			"operation", operation,
			"code", appErr.Code,
			"error", appErr.Message,
		)
		return c.JSON(appErr.HTTPStatusCode(), appErr.ToHTTPResponse())
	}

	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFeedNotFound),
		errors.Is(err, domain.ErrSubscriptionNotFound),
		errors.Is(err, domain.ErrArticleNotFound),
		errors.Is(err, domain.ErrFolderNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrImportNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrUserAlreadyExists),
		errors.Is(err, domain.ErrAlreadySubscribed),
		errors.Is(err, domain.ErrTagNameConflict),
		errors.Is(err, domain.ErrFolderNameConflict):
		status, code = http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrFolderDepthLimit),
		errors.Is(err, domain.ErrFolderChildLimit),
		errors.Is(err, domain.ErrFolderCycle),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrTagNotOwned):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrExportExpired):
		status, code = http.StatusGone, "GONE"
	}

	log := logger.GlobalContext.WithContext(c.Request().Context())
	if status >= 500 {
		log.Error("request failed", "operation", operation, "error", err)
	} else {
		log.Warn("request failed", "operation", operation, "error", err)
	}

	message := err.Error()
	if status >= 500 {
		message = "internal server error"
	}

	return c.JSON(status, map[string]string{
		"error":   "error",
		"code":    code,
		"message": message,
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{
		"error":   "error",
		"code":    "VALIDATION_ERROR",
		"message": message,
	})
}

// currentUser pulls the UserContext planted by the session middleware.
func currentUser(c echo.Context) (*domain.UserContext, error) {
	return domain.GetUserFromContext(c.Request().Context())
}

func uuidParam(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// uuidListQuery parses a comma separated list query parameter.
func uuidListQuery(c echo.Context, name string) ([]uuid.UUID, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func boolQuery(c echo.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true", "1":
		v := true
		return &v, nil
	case "false", "0":
		v := false
		return &v, nil
	}
	return nil, errors.New("expected true or false")
}

func dateQuery(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func intQuery(c echo.Context, name string, fallback int) int {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback
	}
	var value int
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fallback
		}
		value = value*10 + int(r-'0')
		if value > 1<<30 {
			return fallback
		}
	}
	return value
}

package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppContextError_Error(t *testing.T) {
	tests := []struct {
		name            string
		appContextError *AppContextError
		want            string
	}{
		{
			name: "error with cause and full context",
			appContextError: &AppContextError{
				Code:      CodeDatabase,
				Message:   "failed to fetch subscriptions",
				Layer:     "driver",
				Component: "SubscriptionRepository",
				Operation: "ListByUser",
				Cause:     errors.New("connection timeout"),
			},
			want: "[driver:SubscriptionRepository:ListByUser] DATABASE_ERROR: failed to fetch subscriptions (caused by: connection timeout)",
		},
		{
			name: "error without cause",
			appContextError: &AppContextError{
				Code:      CodeValidation,
				Message:   "invalid input",
				Layer:     "usecase",
				Component: "DiscoverFeedUsecase",
				Operation: "ValidateInput",
			},
			want: "[usecase:DiscoverFeedUsecase:ValidateInput] VALIDATION_ERROR: invalid input",
		},
		{
			name: "error with minimal context",
			appContextError: &AppContextError{
				Code:    CodeRateLimit,
				Message: "rate limit exceeded",
				Cause:   errors.New("too many requests"),
			},
			want: "RATE_LIMIT_ERROR: rate limit exceeded (caused by: too many requests)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appContextError.Error(); got != tt.want {
				t.Errorf("AppContextError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{CodeValidation, http.StatusBadRequest},
		{CodeInvalidPassword, http.StatusBadRequest},
		{CodeFolderLimit, http.StatusBadRequest},
		{CodeCircularReference, http.StatusBadRequest},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimit, http.StatusTooManyRequests},
		{CodeUpstream, http.StatusBadGateway},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeDatabase, http.StatusInternalServerError},
		{CodeUnknown, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			e := &AppContextError{Code: tt.code}
			if got := e.HTTPStatusCode(); got != tt.want {
				t.Errorf("HTTPStatusCode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppContextError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	e := NewDatabaseContextError("query failed", "driver", "ArticleRepository", "FindByURL", cause, nil)

	if !errors.Is(e, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestEnrichWithContext_MergesContext(t *testing.T) {
	base := NewValidationContextError("bad folder id", "usecase", "FolderUsecase", "Move", map[string]interface{}{
		"folder_id": "abc",
	})

	enriched := EnrichWithContext(base, "rest", "FolderHandler", "Move", map[string]interface{}{
		"request_id": "req-1",
	})

	if enriched.Context["folder_id"] != "abc" {
		t.Error("expected original context to be preserved")
	}
	if enriched.Context["request_id"] != "req-1" {
		t.Error("expected additional context to be merged")
	}
	if enriched.Code != CodeValidation {
		t.Errorf("expected code preserved, got %s", enriched.Code)
	}
}

func TestAppContextError_IsRetryable(t *testing.T) {
	if !(&AppContextError{Code: CodeUpstream}).IsRetryable() {
		t.Error("upstream errors should be retryable")
	}
	if (&AppContextError{Code: CodeValidation}).IsRetryable() {
		t.Error("validation errors should not be retryable")
	}
}

func TestNewFolderLimitContextError_CarriesCapacity(t *testing.T) {
	e := NewFolderLimitContextError("folder depth exceeded", 10, 3, "usecase", "FolderUsecase", "Create")

	if e.Context["depth"] != 10 {
		t.Errorf("expected depth 10, got %v", e.Context["depth"])
	}
	if e.Context["folder_count"] != 3 {
		t.Errorf("expected folder_count 3, got %v", e.Context["folder_count"])
	}
	if e.HTTPStatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", e.HTTPStatusCode())
	}
}

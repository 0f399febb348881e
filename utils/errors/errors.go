// Package errors provides structured error handling for the lector backend.
// It defines error types with codes, messages, causes, and contextual
// information that the REST boundary maps onto HTTP status codes.
package errors

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to clients. Each code carries a stable HTTP mapping.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidPassword    = "INVALID_PASSWORD"
	CodeFolderLimit        = "FOLDER_LIMIT"
	CodeCircularReference  = "CIRCULAR_REFERENCE"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeRateLimit          = "RATE_LIMIT_ERROR"
	CodeTimeout            = "TIMEOUT_ERROR"
	CodeDatabase           = "DATABASE_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeUnknown            = "UNKNOWN_ERROR"
)

// AppContextError represents an error with rich context information.
type AppContextError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`     // rest, usecase, gateway, driver
	Component string                 `json:"component,omitempty"` // specific component/service name
	Operation string                 `json:"operation,omitempty"` // specific operation/method name
	Cause     error                  `json:"-"`                   // underlying error (not serialized)
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping
func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case CodeValidation, CodeInvalidPassword, CodeFolderLimit, CodeCircularReference:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeUpstream:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeDatabase, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPContextResponse represents the structure of error responses sent to clients
type HTTPContextResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`
	Component string                 `json:"component,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// ToHTTPResponse converts an AppContextError to an HTTP error response
func (e *AppContextError) ToHTTPResponse() HTTPContextResponse {
	return HTTPContextResponse{
		Error:     "error",
		Code:      e.Code,
		Message:   e.Message,
		Layer:     e.Layer,
		Component: e.Component,
		Operation: e.Operation,
		Context:   e.Context,
	}
}

// IsRetryable determines if the error represents a retryable condition
func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case CodeRateLimit, CodeTimeout, CodeUpstream:
		return true
	default:
		return false
	}
}

// NewAppContextError creates a new AppContextError with full context
func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]interface{},
) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
	}
}

// EnrichWithContext creates a new AppContextError by enriching an existing error with additional context
func EnrichWithContext(
	err *AppContextError,
	layer, component, operation string,
	additionalContext map[string]interface{},
) *AppContextError {
	mergedContext := make(map[string]interface{})
	for k, v := range err.Context {
		mergedContext[k] = v
	}
	for k, v := range additionalContext {
		mergedContext[k] = v
	}

	return &AppContextError{
		Code:      err.Code,
		Message:   err.Message,
		Layer:     layer,
		Component: err.Component,
		Operation: operation,
		Cause:     err.Cause,
		Context:   mergedContext,
	}
}

// NewValidationContextError creates a validation error with context
func NewValidationContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeValidation, message, layer, component, operation, nil, context)
}

// NewNotFoundContextError creates a not-found error with context
func NewNotFoundContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeNotFound, message, layer, component, operation, nil, context)
}

// NewConflictContextError creates a conflict error with context
func NewConflictContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeConflict, message, layer, component, operation, nil, context)
}

// NewInvalidCredentialsContextError creates an authentication failure error
func NewInvalidCredentialsContextError(layer, component, operation string) *AppContextError {
	return NewAppContextError(CodeInvalidCredentials, "invalid credentials", layer, component, operation, nil, nil)
}

// NewUnauthorizedContextError creates an error for requests without a valid session
func NewUnauthorizedContextError(message, layer, component, operation string) *AppContextError {
	return NewAppContextError(CodeUnauthorized, message, layer, component, operation, nil, nil)
}

// NewFolderLimitContextError creates a folder capacity error with depth/count context
func NewFolderLimitContextError(message string, depth, folderCount int, layer, component, operation string) *AppContextError {
	return NewAppContextError(CodeFolderLimit, message, layer, component, operation, nil, map[string]interface{}{
		"depth":        depth,
		"folder_count": folderCount,
	})
}

// NewCircularReferenceContextError creates an error for folder moves that would introduce a cycle
func NewCircularReferenceContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeCircularReference, message, layer, component, operation, nil, context)
}

// NewUpstreamContextError creates an error for feed fetch/parse failures
func NewUpstreamContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeUpstream, message, layer, component, operation, cause, context)
}

// NewDatabaseContextError creates a database error with context
func NewDatabaseContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeDatabase, message, layer, component, operation, cause, context)
}

// NewTimeoutContextError creates a timeout error with context
func NewTimeoutContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeTimeout, message, layer, component, operation, cause, context)
}

// NewRateLimitContextError creates a rate limit error with context
func NewRateLimitContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeRateLimit, message, layer, component, operation, cause, context)
}

// NewUnknownContextError creates an unknown error with context
func NewUnknownContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError(CodeUnknown, message, layer, component, operation, cause, context)
}

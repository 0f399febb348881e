// Package validator wraps go-playground/validator with the custom rules
// the HTTP surface binds request payloads against.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules.
type Validator struct {
	validator *validator.Validate
}

// New creates a validator instance with custom rules registered.
func New() *Validator {
	validate := validator.New()

	registerCustomValidators(validate)

	// Use JSON field names in validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: validate}
}

// Validate validates a struct. Echo calls this through its binder.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return NewValidationError(fieldErrors)
		}
		return err
	}
	return nil
}

// ValidateVar validates a single variable against a tag expression.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validator.Var(field, tag)
}

// ValidationError carries per-field user-facing messages.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	var messages []string
	for field, message := range e.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", field, message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError converts validator.ValidationErrors into friendly
// per-field messages.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	messages := make(map[string]string)

	for _, err := range errs {
		field := err.Field()

		switch err.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s is required", field)
		case "min":
			messages[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			messages[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "uuid4", "uuid":
			messages[field] = fmt.Sprintf("%s must be a valid UUID", field)
		case "url", "http_url":
			messages[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "username":
			messages[field] = "username must contain only letters, numbers, dots, hyphens and underscores"
		case "feed_url":
			messages[field] = fmt.Sprintf("%s must be an http or https URL", field)
		case "sort_order":
			messages[field] = fmt.Sprintf("%s must be alphabetical or recent_first", field)
		case "oneof":
			messages[field] = fmt.Sprintf("%s must be one of: %s", field, err.Param())
		default:
			messages[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return &ValidationError{Errors: messages}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

func registerCustomValidators(validate *validator.Validate) {
	// Username: letters, numbers, dots, hyphens, underscores; 3-30 chars
	validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		username := fl.Field().String()
		return usernamePattern.MatchString(username) &&
			len(username) >= 3 && len(username) <= 30
	})

	// Feed URL: absolute http(s) URL
	validate.RegisterValidation("feed_url", func(fl validator.FieldLevel) bool {
		raw := strings.TrimSpace(fl.Field().String())
		return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
	})

	// Subscription list ordering
	validate.RegisterValidation("sort_order", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "", "alphabetical", "recent_first":
			return true
		}
		return false
	})
}

// IsValidUsername reports whether a username passes the custom rule.
func IsValidUsername(username string) bool {
	return New().ValidateVar(username, "required,username") == nil
}

// IsValidUUID reports whether a string is a well-formed UUID.
func IsValidUUID(id string) bool {
	return New().ValidateVar(id, "required,uuid4") == nil
}

package pysig

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// ErrorCode represents a machine-readable diagnostic code.
type ErrorCode string

const (
	// CodeUnboundAtomic is reported when an atomic type has no display name
	// in the binding table.
	CodeUnboundAtomic ErrorCode = "unbound_atomic"

	// CodeUnsupportedShape is reported for types that are neither bound
	// atomics nor one of the wrapper shapes.
	CodeUnsupportedShape ErrorCode = "unsupported_shape"

	// CodeInvalidSignature is reported for documented functions whose Go
	// signature cannot be expressed (variadic, multiple results, not a func).
	CodeInvalidSignature ErrorCode = "invalid_signature"

	CodeInvalidConfig ErrorCode = "invalid_config"
	CodeInternal      ErrorCode = "internal"
)

// Error is a generation diagnostic.
type Error struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new diagnostic.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Errorf creates a new diagnostic with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetail returns a new Error with the key-value pair added to details.
func (e *Error) WithDetail(key string, value any) *Error {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// CodeOf returns the code of the first *Error found in err's chain.
// Members of joined errors are searched in order, so a join reports the
// code of its first classified member. Any other non-nil error is
// CodeInternal.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	if code, ok := findCode(err); ok {
		return code
	}
	return CodeInternal
}

func findCode(err error) (ErrorCode, bool) {
	for err != nil {
		if diag, ok := err.(*Error); ok {
			return diag.Code, true
		}
		if u, ok := err.(interface{ Unwrap() []error }); ok {
			for _, member := range u.Unwrap() {
				if code, ok := findCode(member); ok {
					return code, true
				}
			}
			return "", false
		}
		err = errors.UnwrapOnce(err)
	}
	return "", false
}

// ConfigError converts a validator error into an invalid_config diagnostic.
// Errors of other kinds are returned unchanged.
func ConfigError(err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	details := make(map[string]any)
	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		msg := formatValidationError(ve)
		details[ve.Field()] = msg
		messages = append(messages, ve.Field()+": "+msg)
	}
	return &Error{
		Code:    CodeInvalidConfig,
		Message: strings.Join(messages, "; "),
		Details: details,
	}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", ve.Param())
	case "required_if":
		return fmt.Sprintf("required when %s", ve.Param())
	case "min":
		if ve.Kind() == reflect.Slice || ve.Kind() == reflect.Map {
			return fmt.Sprintf("must have at least %s entries", ve.Param())
		}
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "excludes":
		return fmt.Sprintf("must not contain %q", ve.Param())
	case "python_ident":
		return "must be a valid Python identifier"
	default:
		if ve.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", ve.Tag(), ve.Param())
		}
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}

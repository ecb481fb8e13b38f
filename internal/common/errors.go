package common

import "fmt"

// The gateway surfaces three error categories to callers: invalid client
// input, an upstream lookup that returned nothing, and any upstream call
// that failed or returned an unexpected shape. Handlers map these to
// 400/404/500 respectively.

// ValidationError indicates missing or malformed client input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates an upstream lookup returned no match.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFoundError with a formatted message.
func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ExternalServiceError indicates an upstream call failed, returned a
// non-success status, or returned an unexpected shape.
type ExternalServiceError struct {
	Message string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError creates an ExternalServiceError wrapping err.
// err may be nil when there is no underlying cause to preserve.
func NewExternalServiceError(message string, err error) error {
	return &ExternalServiceError{Message: message, Err: err}
}

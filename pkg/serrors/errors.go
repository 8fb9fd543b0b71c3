package serrors

import (
	"fmt"
	"net/http"
)

// Error codes surfaced to API clients. The set is closed: every failure a
// handler returns maps onto exactly one of these.
const (
	CodeValidation         = "VALIDATION"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnknownChangeType  = "UNKNOWN_CHANGE_TYPE"
	CodeBackendUnavailable = "BACKEND_UNAVAILABLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL"
)

// BaseError carries an HTTP status, a stable machine-readable code and a
// human-readable message across service boundaries.
type BaseError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *BaseError) Unwrap() error { return e.Cause }

func New(status int, code, message string, cause error) *BaseError {
	return &BaseError{Status: status, Code: code, Message: message, Cause: cause}
}

// NewValidation reports missing or malformed user input.
func NewValidation(message string) *BaseError {
	return New(http.StatusBadRequest, CodeValidation, message, nil)
}

// NewFieldRequired reports a missing required field.
func NewFieldRequired(field string) *BaseError {
	return NewValidation(fmt.Sprintf("%s is required", field))
}

func NewNotFound(entity string) *BaseError {
	return New(http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", entity), nil)
}

func NewConflict(message string) *BaseError {
	return New(http.StatusConflict, CodeConflict, message, nil)
}

// NewUnknownChangeType reports a change type outside the known tag set.
func NewUnknownChangeType(changeType string) *BaseError {
	return New(http.StatusInternalServerError, CodeUnknownChangeType,
		fmt.Sprintf("unknown change type %q", changeType), nil)
}

func NewBackendUnavailable(cause error) *BaseError {
	return New(http.StatusInternalServerError, CodeBackendUnavailable, "backend unavailable", cause)
}

func NewUnauthorized() *BaseError {
	return New(http.StatusUnauthorized, CodeUnauthorized, "authentication required", nil)
}

func NewForbidden() *BaseError {
	return New(http.StatusForbidden, CodeForbidden, "operation not permitted", nil)
}

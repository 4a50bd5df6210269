// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Parse errors
	ErrUnknownCurrency   = &Error{Code: "UNKNOWN_CURRENCY", Message: "unrecognized currency code"}
	ErrUnknownUnderlying = &Error{Code: "UNKNOWN_UNDERLYING", Message: "unrecognized fx underlying"}
	ErrUnknownDayCounter = &Error{Code: "UNKNOWN_DAY_COUNTER", Message: "unrecognized day count convention"}
	ErrUnknownCalendar   = &Error{Code: "UNKNOWN_CALENDAR", Message: "calendar not registered"}
	ErrInvalidDate       = &Error{Code: "INVALID_DATE", Message: "invalid calendar date"}

	// Internal consistency faults. These are programming errors and are
	// raised through panic, never returned for ordinary input.
	ErrInvariant = &Error{Code: "INVARIANT_VIOLATION", Message: "internal invariant violated"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}

	// Access errors
	ErrUnauthorized = &Error{Code: "UNAUTHORIZED", Message: "api key required"}
	ErrForbidden    = &Error{Code: "FORBIDDEN", Message: "api key rejected"}

	// Storage errors
	ErrStorageFailed    = &Error{Code: "STORAGE_FAILED", Message: "snapshot storage failed"}
	ErrSnapshotNotFound = &Error{Code: "SNAPSHOT_NOT_FOUND", Message: "snapshot not stored"}
)

// Package errors defines the structured error type shared by the CLI,
// MCP, and web surfaces. Extraction itself never produces these for
// data-shape anomalies: malformed binary content degrades to partial
// results, and only API-boundary contract violations become errors.
package errors

import "fmt"

// ErrorCode identifies an aplsf error category.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"   // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"         // 404
	ErrSourceUnreadable ErrorCode = "SOURCE_UNREADABLE" // 404
	ErrFileTooLarge     ErrorCode = "FILE_TOO_LARGE"    // 413
	ErrInternal         ErrorCode = "INTERNAL"          // 500
)

// Error carries a code, an HTTP-ish status for the web surface, a
// message, and optional detail fields.
type Error struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid parameters.
func NewInvalidRequest(msg string) *Error {
	return &Error{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing catalog record.
func NewNotFound(identifier string) *Error {
	return &Error{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewSourceUnreadable creates an error for an input file that could not
// be opened or read.
func NewSourceUnreadable(path string, err error) *Error {
	return &Error{
		Code:    ErrSourceUnreadable,
		Status:  404,
		Message: fmt.Sprintf("cannot read source %s: %v", path, err),
		Details: map[string]any{"path": path},
	}
}

// NewFileTooLarge creates a 413 error when an input exceeds the
// configured size cap.
func NewFileTooLarge(path string, max, actual int64) *Error {
	return &Error{
		Code:    ErrFileTooLarge,
		Status:  413,
		Message: fmt.Sprintf("source %s is %d bytes (max %d)", path, actual, max),
		Details: map[string]any{"path": path, "max_bytes": max, "actual_bytes": actual},
	}
}

// NewInternal creates a 500 error for unexpected failures.
func NewInternal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &Error{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks whether err is an *Error with the given code.
func Is(err error, code ErrorCode) bool {
	if e, ok := err.(*Error); ok {
		return e.Code == code
	}
	return false
}

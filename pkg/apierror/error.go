package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a structured error returned by a remote API call.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	URL        string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("fetch failed [%d]: %s on %s", e.StatusCode, e.Message, e.URL)
	}
	return fmt.Sprintf("fetch failed [%d]: %s", e.StatusCode, e.Message)
}

// FromStatus creates an error from a non-2xx HTTP response.
func FromStatus(statusCode int, url string) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       codeForStatus(statusCode),
		Message:    http.StatusText(statusCode),
		URL:        url,
	}
}

// NotFound creates a 404 error for an entity absent from cache and remote.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		StatusCode: http.StatusNotFound,
		Code:       "NOT_FOUND",
		Message:    message,
	}
}

// BadRequest creates a 400 error.
func BadRequest(message string) *Error {
	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       "BAD_REQUEST",
		Message:    message,
	}
}

// BadResponse creates an error for a 2xx response whose payload failed validation.
func BadResponse(message string) *Error {
	return &Error{
		StatusCode: http.StatusOK,
		Code:       "BAD_RESPONSE",
		Message:    message,
	}
}

// IsNotFound reports whether err is (or wraps) a 404 API error.
func IsNotFound(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

func codeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UPSTREAM_ERROR"
	}
}

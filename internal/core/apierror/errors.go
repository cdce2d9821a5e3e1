package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a normalized error.
type Code string

const (
	CodeBadRequest      Code = "BAD_REQUEST"
	CodeUnauthorized    Code = "UNAUTHORIZED"
	CodeForbidden       Code = "FORBIDDEN"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"
	CodeRateLimited     Code = "RATE_LIMITED"
	CodeServerError     Code = "SERVER_ERROR"
	CodeNetworkError    Code = "NETWORK_ERROR"
	CodeUnknownError    Code = "UNKNOWN_ERROR"
)

var defaultMessages = map[Code]string{
	CodeBadRequest:      "Invalid request data",
	CodeUnauthorized:    "Authentication required",
	CodeForbidden:       "Access forbidden",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation failed",
	CodeRateLimited:     "Too many requests. Please try again later.",
	CodeServerError:     "Internal server error",
	CodeNetworkError:    "Network error occurred",
	CodeUnknownError:    "An unexpected error occurred",
}

// DefaultMessage returns the fixed message used when the server supplies none.
func (c Code) DefaultMessage() string {
	return defaultMessages[c]
}

// Error is a normalized API failure. Values are never mutated after Normalize
// returns them; WithContext returns a copy.
type Error struct {
	Message string
	Status  int // 0 when no response was received
	Code    Code
	Details any
	cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return CodeUnknownError.DefaultMessage()
	}
	return e.Message
}

// Unwrap returns the failure the error was normalized from.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithContext returns a copy whose message is "prefix: message".
func (e *Error) WithContext(prefix string) *Error {
	if prefix == "" {
		return e
	}
	cp := *e
	cp.Message = prefix + ": " + e.Message
	return &cp
}

// HasCode reports whether err normalizes to code.
func HasCode(err error, code Code) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return err != nil && Normalize(err).Code == code
}

// TransportError is produced by the HTTP client for every failed call.
// StatusCode 0 means no response was received.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s %s: no response", e.Method, e.URL)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Package domain defines the core domain models for tankmate.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is a local failure with a stable code.
// Failures reported by the API are apierror.Error values instead.
type DomainError struct {
	Code    string // e.g. "TM-AUTH-4010"
	Message string
	Details string
	Cause   error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithDetails returns a copy carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCause returns a copy wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	cp := *e
	cp.Cause = cause
	return &cp
}

// IsDomainError reports whether err is a DomainError with the given code.
// An empty code matches any DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if !errors.As(err, &de) {
		return false
	}
	return code == "" || de.Code == code
}

// GetErrorCode returns the code of a DomainError, or "".
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrInvalidArgument indicates a malformed flag or argument value.
	ErrInvalidArgument = NewDomainError("TM-ARG-1001", "invalid argument")

	// ErrMissingArgument indicates a required argument is missing.
	ErrMissingArgument = NewDomainError("TM-ARG-1002", "missing required argument")

	// ErrArgumentConflict indicates mutually exclusive arguments.
	ErrArgumentConflict = NewDomainError("TM-ARG-1003", "argument conflict")
)

// ============================================================================
// Authentication Errors (AUTH)
// ============================================================================

var (
	// ErrNotAuthenticated indicates no valid session is stored.
	ErrNotAuthenticated = NewDomainError("TM-AUTH-4010", "not logged in")

	// ErrSessionExpired indicates the stored token has expired.
	ErrSessionExpired = NewDomainError("TM-AUTH-4011", "session expired, please log in again")

	// ErrMalformedToken indicates the stored token cannot be decoded.
	ErrMalformedToken = NewDomainError("TM-AUTH-4000", "malformed token")

	// ErrPasswordMismatch indicates the confirmation did not match.
	ErrPasswordMismatch = NewDomainError("TM-AUTH-4001", "passwords do not match")
)

// ============================================================================
// Storage Errors (STORE)
// ============================================================================

var (
	// ErrStorage indicates the local store failed.
	ErrStorage = NewDomainError("TM-STORE-5001", "local storage error")

	// ErrStoreLocked indicates the encrypted store could not be opened with the configured key.
	ErrStoreLocked = NewDomainError("TM-STORE-5002", "local store key mismatch")
)

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *DomainError
		want string
	}{
		{"plain", ErrNotAuthenticated, "[TM-AUTH-4010] not logged in"},
		{"details", ErrInvalidArgument.WithDetails("volume must be a number"), "[TM-ARG-1001] invalid argument: volume must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDomainError_IsByCode(t *testing.T) {
	withDetails := ErrMissingArgument.WithDetails("tank id")
	if !errors.Is(withDetails, ErrMissingArgument) {
		t.Error("copies with details should match the original code")
	}
	if errors.Is(withDetails, ErrInvalidArgument) {
		t.Error("different codes must not match")
	}
	if errors.Is(ErrStorage, fmt.Errorf("storage")) {
		t.Error("plain errors must not match")
	}
}

func TestDomainError_CopiesDoNotMutate(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := ErrStorage.WithDetails("set token").WithCause(cause)

	if ErrStorage.Details != "" || ErrStorage.Cause != nil {
		t.Fatal("sentinel error was mutated")
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if err.Details != "set token" {
		t.Errorf("Details = %q", err.Details)
	}
}

func TestIsDomainErrorAndCode(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrSessionExpired)

	if !IsDomainError(wrapped, "TM-AUTH-4011") {
		t.Error("IsDomainError should see through wrapping")
	}
	if !IsDomainError(wrapped, "") {
		t.Error("empty code should match any DomainError")
	}
	if IsDomainError(fmt.Errorf("x"), "") {
		t.Error("plain error is not a DomainError")
	}
	if got := GetErrorCode(wrapped); got != "TM-AUTH-4011" {
		t.Errorf("GetErrorCode() = %q", got)
	}
	if got := GetErrorCode(nil); got != "" {
		t.Errorf("GetErrorCode(nil) = %q", got)
	}
}

func TestPredefinedErrorCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range []*DomainError{
		ErrInvalidArgument, ErrMissingArgument, ErrArgumentConflict,
		ErrNotAuthenticated, ErrSessionExpired, ErrMalformedToken, ErrPasswordMismatch,
		ErrStorage, ErrStoreLocked,
	} {
		if e.Message == "" {
			t.Errorf("%s has no message", e.Code)
		}
		if seen[e.Code] {
			t.Errorf("duplicate code %s", e.Code)
		}
		seen[e.Code] = true
	}
}

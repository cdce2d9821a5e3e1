package apierror

import (
	"context"
	"errors"
	"time"
)

// Retry policy for queries. Mutations are never retried.
const (
	MaxAttempts    = 3
	BaseRetryDelay = time.Second
	MaxRetryDelay  = 30 * time.Second
)

// ShouldRetry reports whether a query that has failed failureCount times
// should be tried again. Client errors (4xx) and cancellations never are.
func ShouldRetry(failureCount int, err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if status := Normalize(err).Status; status >= 400 && status < 500 {
		return false
	}
	return failureCount < MaxAttempts
}

// RetryDelay is min(BaseRetryDelay * 2^attemptIndex, MaxRetryDelay).
func RetryDelay(attemptIndex int) time.Duration {
	if attemptIndex < 0 {
		attemptIndex = 0
	}
	if attemptIndex >= 5 { // 2^5 s already exceeds the cap
		return MaxRetryDelay
	}
	return min(BaseRetryDelay<<attemptIndex, MaxRetryDelay)
}

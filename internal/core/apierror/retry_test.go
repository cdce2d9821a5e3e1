package apierror

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name     string
		failures int
		err      error
		want     bool
	}{
		{"400 first failure", 0, &TransportError{StatusCode: 400}, false},
		{"400 later failure", 2, &TransportError{StatusCode: 400}, false},
		{"404", 1, &TransportError{StatusCode: 404}, false},
		{"499", 0, &TransportError{StatusCode: 499}, false},
		{"503 first", 0, &TransportError{StatusCode: 503}, true},
		{"503 second", 2, &TransportError{StatusCode: 503}, true},
		{"503 third", 3, &TransportError{StatusCode: 503}, false},
		{"500", 1, &TransportError{StatusCode: 500}, true},
		{"network", 1, &TransportError{Err: errors.New("reset")}, true},
		{"normalized 429", 0, Normalize(&TransportError{StatusCode: 429}), false},
		{"canceled", 0, &TransportError{Err: context.Canceled}, false},
		{"nil", 0, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.failures, tt.err); got != tt.want {
				t.Errorf("ShouldRetry(%d) = %v, want %v", tt.failures, got, tt.want)
			}
		})
	}
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{-1, time.Second},
		{0, time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{64, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := RetryDelay(tt.attempt); got != tt.want {
			t.Errorf("RetryDelay(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}
}

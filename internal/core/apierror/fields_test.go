package apierror

import (
	"errors"
	"reflect"
	"testing"
)

func TestFieldErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want map[string]string
	}{
		{
			name: "errors object and message",
			err:  &TransportError{StatusCode: 422, Body: []byte(`{"message":"Invalid","errors":{"name":"required","email":["taken","bad"]}}`)},
			want: map[string]string{"name": "required", "email": "taken", "general": "Invalid"},
		},
		{
			name: "field violations",
			err:  &TransportError{StatusCode: 400, Body: []byte(`{"fieldErrors":[{"field":"volume","message":"must be positive"},{"message":"no field"}]}`)},
			want: map[string]string{"volume": "must be positive"},
		},
		{
			name: "errors list",
			err:  &TransportError{StatusCode: 422, Body: []byte(`{"errors":[{"field":"name","message":"too long"}]}`)},
			want: map[string]string{"name": "too long"},
		},
		{
			name: "normalized error keeps transport body",
			err:  Normalize(&TransportError{StatusCode: 400, Body: []byte(`{"message":"Email already registered"}`)}).WithContext("Registration failed"),
			want: map[string]string{"general": "Email already registered"},
		},
		{
			name: "opaque body falls back to message",
			err:  Normalize(&TransportError{StatusCode: 500, Body: []byte(`oops`)}),
			want: map[string]string{"general": "Internal server error"},
		},
		{
			name: "plain error",
			err:  errors.New("connection refused"),
			want: map[string]string{"general": "connection refused"},
		},
		{
			name: "nil",
			err:  nil,
			want: map[string]string{"general": "An unexpected error occurred. Please try again."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldErrors(tt.err); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FieldErrors() = %v, want %v", got, tt.want)
			}
		})
	}
}

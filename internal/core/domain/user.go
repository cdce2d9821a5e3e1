// Package domain defines the core domain models for tankmate.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an identifier the API may send as a JSON string or number.
type ID string

// UnmarshalJSON accepts "u1", 42 and null.
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", b)
	}
	*id = ID(n.String())
	return nil
}

// User is the minimal identity kept on the client.
// Email and Name are empty strings when unknown, never absent.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,notblank,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token        string `json:"token" validate:"required"`
	RefreshToken string `json:"refreshToken,omitempty"`
	UserID       ID     `json:"userId,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
}

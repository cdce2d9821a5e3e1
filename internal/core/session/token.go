package session

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// DefaultSkew is subtracted from the expiry before comparing with now.
const DefaultSkew = 5 * time.Second

// segmentParser decodes base64url segments with or without padding.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Claims is the subset of the token payload the client reads.
type Claims struct {
	// ExpiresAt is the zero time when exp is absent, zero or not a number.
	ExpiresAt time.Time
	Subject   string
	UserID    string
	Email     string
	Name      string
}

// Decode parses the payload segment of token.
// It returns false unless token has exactly three segments and a JSON object payload.
func Decode(token string) (*Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return nil, false
	}

	c := &Claims{
		Subject: identifier(payload["sub"]),
		UserID:  identifier(payload["userId"]),
		Email:   str(payload["email"]),
		Name:    str(payload["name"]),
	}
	if n, ok := payload["exp"].(json.Number); ok {
		if secs, err := n.Float64(); err == nil && secs != 0 && !math.IsInf(secs, 0) {
			c.ExpiresAt = time.UnixMilli(int64(secs * 1000))
		}
	}
	return c, true
}

// Identity returns the user id, preferring userId over sub.
func (c *Claims) Identity() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// IdentityFromToken builds a User from the token payload.
// Absent email and name become empty strings.
func IdentityFromToken(token string) (domain.User, bool) {
	c, ok := Decode(token)
	if !ok {
		return domain.User{}, false
	}
	return domain.User{ID: c.Identity(), Email: c.Email, Name: c.Name}, true
}

// identifier accepts JSON strings and numbers.
func identifier(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

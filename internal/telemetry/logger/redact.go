package logger

import (
	"log/slog"
	"strings"
)

const (
	redactedValue = "***REDACTED***"
	bearerPrefix  = "Bearer "
	// Every JWT header starts with base64url(`{"`).
	jwtPrefix = "eyJ"
)

// secretKeyWords mark an attribute key as naming a secret.
var secretKeyWords = [...]string{"password", "secret", "token", "key", "credential", "auth", "bearer"}

// redactSensitive is the ReplaceAttr hook of every handler built by New.
func redactSensitive(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		members := a.Value.Group()
		out := make([]slog.Attr, 0, len(members))
		for _, m := range members {
			out = append(out, redactSensitive(m))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		v := a.Value.String()
		switch {
		case IsSensitiveValue(v):
			return slog.String(a.Key, RedactString(v))
		case v != "" && IsSensitiveKey(a.Key):
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}

// RedactString masks a bearer header value or a JWT, keeping three
// characters at each end. Other values are returned unchanged.
func RedactString(v string) string {
	if rest, ok := strings.CutPrefix(v, bearerPrefix); ok {
		return bearerPrefix + mask(rest)
	}
	if isJWT(v) {
		return jwtPrefix + mask(v[len(jwtPrefix):])
	}
	return v
}

func mask(s string) string {
	if len(s) <= 6 {
		return "***"
	}
	return s[:3] + "..." + s[len(s)-3:]
}

// IsSensitiveKey reports whether an attribute key names a secret.
func IsSensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, w := range secretKeyWords {
		if strings.Contains(k, w) {
			return true
		}
	}
	return false
}

// IsSensitiveValue reports whether v is a bearer header or a JWT.
func IsSensitiveValue(v string) bool {
	return strings.HasPrefix(v, bearerPrefix) || isJWT(v)
}

func isJWT(v string) bool {
	return strings.HasPrefix(v, jwtPrefix) && strings.Count(v, ".") == 2
}

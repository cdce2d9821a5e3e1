package session

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Checker decides token expiry against a clock with a skew allowance.
type Checker struct {
	clock Clock
	skew  time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithClock sets the clock.
func WithClock(c Clock) Option {
	return func(ch *Checker) {
		ch.clock = c
	}
}

// WithSkew sets the skew allowance.
func WithSkew(d time.Duration) Option {
	return func(ch *Checker) {
		ch.skew = d
	}
}

// NewChecker creates a Checker using the system clock and DefaultSkew.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{clock: systemClock{}, skew: DefaultSkew}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsExpired reports whether token is undecodable, lacks exp, or
// now >= exp - skew.
func (c *Checker) IsExpired(token string) bool {
	claims, ok := Decode(token)
	if !ok || claims.ExpiresAt.IsZero() {
		return true
	}
	return !c.clock.Now().Before(claims.ExpiresAt.Add(-c.skew))
}

// Remaining returns the time left before the token counts as expired, or 0.
func (c *Checker) Remaining(token string) time.Duration {
	if c.IsExpired(token) {
		return 0
	}
	claims, _ := Decode(token)
	return claims.ExpiresAt.Add(-c.skew).Sub(c.clock.Now())
}

var defaultChecker = NewChecker()

// IsExpired reports expiry using the system clock and DefaultSkew.
func IsExpired(token string) bool {
	return defaultChecker.IsExpired(token)
}

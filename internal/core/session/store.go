package session

import (
	"context"

	"github.com/yndnr/tankmate-go/internal/storage"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// Store reads and clears the tokens held in persistent storage.
type Store struct {
	kv      storage.KV
	checker *Checker
	log     logger.Logger
}

// NewStore creates a Store over kv. A nil checker uses the default one.
func NewStore(kv storage.KV, checker *Checker, log logger.Logger) *Store {
	if checker == nil {
		checker = defaultChecker
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{kv: kv, checker: checker, log: log}
}

// Checker returns the checker used by the store.
func (s *Store) Checker() *Checker {
	return s.checker
}

// Token returns the stored session token, or "" when none is stored or
// storage cannot be read.
func (s *Store) Token(ctx context.Context) string {
	tok, _, err := storage.GetString(ctx, s.kv, storage.KeyToken)
	if err != nil {
		s.log.Warn("read session token failed", "error", err)
		return ""
	}
	return tok
}

// SetTokens persists the session token and, when non-empty, the refresh token.
func (s *Store) SetTokens(ctx context.Context, token, refreshToken string) error {
	if err := s.kv.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
		return err
	}
	if refreshToken == "" {
		return s.kv.Delete(ctx, storage.KeyRefreshToken)
	}
	return s.kv.Set(ctx, storage.KeyRefreshToken, []byte(refreshToken))
}

// Clear removes both tokens. It is idempotent and never fails;
// storage errors are logged.
func (s *Store) Clear(ctx context.Context) {
	for _, key := range []string{storage.KeyToken, storage.KeyRefreshToken} {
		if err := s.kv.Delete(ctx, key); err != nil {
			s.log.Warn("clear session entry failed", "entry", key, "error", err)
		}
	}
}

// HasValidAuth reports whether a token is stored and not expired.
func (s *Store) HasValidAuth(ctx context.Context) bool {
	tok := s.Token(ctx)
	return tok != "" && !s.checker.IsExpired(tok)
}

package storage

import (
	"context"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

// Reserved keys used by Sealed. They live in the inner store unencrypted
// (salt) or sealed with an empty payload (check).
const (
	sealedSaltKey  = "__sealed/salt"
	sealedCheckKey = "__sealed/check"
	sealedPrefix   = "__sealed/"

	saltLength = 16

	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
)

var sealedCheckValue = []byte("tankmate")

// Sealed encrypts values of an inner KV with XChaCha20-Poly1305.
// The key name is bound as additional data, so values cannot be swapped between keys.
type Sealed struct {
	inner KV
	aead  cipher.AEAD
}

// Unwrap returns the store holding the ciphertext.
func (s *Sealed) Unwrap() KV {
	return s.inner
}

// NewSealed derives the value key from passphrase and a salt persisted in inner.
// A passphrase that does not match the one the store was sealed with returns
// domain.ErrStoreLocked.
func NewSealed(ctx context.Context, inner KV, passphrase string) (*Sealed, error) {
	if passphrase == "" {
		return nil, domain.ErrInvalidArgument.WithDetails("encryption key is empty")
	}

	salt, err := inner.Get(ctx, sealedSaltKey)
	fresh := errors.Is(err, ErrKeyNotFound)
	switch {
	case fresh:
		salt = make([]byte, saltLength)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return nil, fmt.Errorf("sealed: generate salt: %w", err)
		}
		if err := inner.Set(ctx, sealedSaltKey, salt); err != nil {
			return nil, domain.ErrStorage.WithCause(err)
		}
	case err != nil:
		return nil, domain.ErrStorage.WithCause(err)
	}

	key := argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory, argon2Threads, chacha20poly1305.KeySize)
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("sealed: init cipher: %w", err)
	}

	s := &Sealed{inner: inner, aead: aead}
	if fresh {
		if err := s.Set(ctx, sealedCheckKey, sealedCheckValue); err != nil {
			return nil, err
		}
		return s, nil
	}

	check, err := s.Get(ctx, sealedCheckKey)
	if err != nil || string(check) != string(sealedCheckValue) {
		return nil, domain.ErrStoreLocked
	}
	return s, nil
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	ciphertext, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	ns := s.aead.NonceSize()
	if len(ciphertext) < ns {
		return nil, domain.ErrStoreLocked.WithDetails(key)
	}
	plaintext, err := s.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], []byte(key))
	if err != nil {
		return nil, domain.ErrStoreLocked.WithDetails(key).WithCause(err)
	}
	return plaintext, nil
}

func (s *Sealed) Set(ctx context.Context, key string, value []byte) error {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("sealed: nonce: %w", err)
	}
	return s.inner.Set(ctx, key, s.aead.Seal(nonce, nonce, value, []byte(key)))
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// Keys hides the reserved keys.
func (s *Sealed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.inner.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	out := keys[:0]
	for _, k := range keys {
		if !strings.HasPrefix(k, sealedPrefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (s *Sealed) Close() error {
	return s.inner.Close()
}

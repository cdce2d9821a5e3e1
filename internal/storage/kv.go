package storage

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeySidebarOpen  = "sidebarOpen"
	KeyTheme        = "theme"
)

// Common errors.
var (
	ErrKeyNotFound = errors.New("storage: key not found")
	ErrClosed      = errors.New("storage: store closed")
)

// KV is a small string-keyed byte store.
//
// Implementations must be safe for concurrent use. Delete of a missing key
// is not an error.
type KV interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	Delete(ctx context.Context, key string) error

	// Keys lists keys with the given prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}

// Config selects and configures the store opened by Open.
type Config struct {
	// Dir is the Badger directory. Ignored when InMemory is set.
	Dir string `koanf:"dir" yaml:"dir"`

	// InMemory keeps everything in a MemoryStore; nothing survives the process.
	InMemory bool `koanf:"in_memory" yaml:"in_memory"`

	// SyncWrites fsyncs after each write.
	// Default: true (the store is tiny and tokens must survive a crash)
	SyncWrites bool `koanf:"sync_writes" yaml:"sync_writes"`

	// EncryptionKey seals every value when non-empty.
	EncryptionKey string `koanf:"encryption_key" yaml:"encryption_key,omitempty"`
}

// DefaultConfig returns the default store configuration rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:        dir,
		SyncWrites: true,
	}
}

// GetString reads key as a string; ok is false when absent.
func GetString(ctx context.Context, kv KV, key string) (string, bool, error) {
	b, err := kv.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

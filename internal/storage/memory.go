package storage

import (
	"context"
	"sync/atomic"

	"github.com/yndnr/tankmate-go/pkg/cmap"
)

// MemoryStore is a KV held in process memory, for callers that need no
// persistence.
type MemoryStore struct {
	data   *cmap.Map[[]byte]
	closed atomic.Bool
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{data: cmap.New[[]byte]()}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	v, ok := m.data.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.data.Set(key, append([]byte(nil), value...))
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	if m.closed.Load() {
		return ErrClosed
	}
	m.data.Delete(key)
	return nil
}

func (m *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return m.data.KeysWithPrefix(prefix), nil
}

func (m *MemoryStore) Close() error {
	m.closed.Store(true)
	return nil
}

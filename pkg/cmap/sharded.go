package cmap

import (
	"sort"
	"strings"
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the shard count used by New.
const DefaultShardCount = 16

// Map is a concurrent string-keyed map.
type Map[V any] struct {
	shards []*shard[V]
	mask   uint32
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// New creates a map with DefaultShardCount shards.
func New[V any]() *Map[V] {
	return NewWithShards[V](DefaultShardCount)
}

// NewWithShards creates a map with shardCount shards. Counts that are not a
// positive power of two fall back to DefaultShardCount.
func NewWithShards[V any](shardCount int) *Map[V] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}
	m := &Map[V]{
		shards: make([]*shard[V], shardCount),
		mask:   uint32(shardCount - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	return m.shards[murmur3.Sum32([]byte(key))&m.mask]
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Set stores value under key.
func (m *Map[V]) Set(key string, value V) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
}

// Delete removes key. Missing keys are ignored.
func (m *Map[V]) Delete(key string) {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}

// KeysWithPrefix returns the sorted keys starting with prefix. Shards are
// locked one at a time, so concurrent writers may or may not be observed.
func (m *Map[V]) KeysWithPrefix(prefix string) []string {
	var keys []string
	for _, s := range m.shards {
		s.mu.RLock()
		for k := range s.items {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		s.mu.RUnlock()
	}
	sort.Strings(keys)
	return keys
}

// Clear removes every entry.
func (m *Map[V]) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		s.items = make(map[string]V)
		s.mu.Unlock()
	}
}

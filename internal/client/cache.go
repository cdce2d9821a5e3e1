package client

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// queryCache holds successful query bodies keyed by path and query string.
// Ristretto cannot enumerate keys, so the live key set is tracked alongside
// for prefix invalidation.
type queryCache struct {
	ttl   time.Duration
	store *ristretto.Cache

	mu   sync.Mutex
	keys map[string]struct{}
}

func newQueryCache(ttl time.Duration) (*queryCache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     32 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &queryCache{ttl: ttl, store: store, keys: make(map[string]struct{})}, nil
}

func (q *queryCache) get(key string) (json.RawMessage, bool) {
	v, ok := q.store.Get(key)
	if !ok {
		return nil, false
	}
	raw, ok := v.(json.RawMessage)
	return raw, ok
}

func (q *queryCache) set(key string, raw json.RawMessage) {
	if !q.store.SetWithTTL(key, raw, int64(len(raw))+int64(len(key)), q.ttl) {
		return
	}
	q.store.Wait()

	q.mu.Lock()
	q.keys[key] = struct{}{}
	q.mu.Unlock()
}

// invalidate drops every entry whose path is an ancestor or descendant of path.
// "/tanks/1/events" drops "/tanks", "/tanks/1" and "/tanks/1/events?...".
func (q *queryCache) invalidate(path string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for key := range q.keys {
		keyPath, _, _ := strings.Cut(key, "?")
		if related(keyPath, path) {
			q.store.Del(key)
			delete(q.keys, key)
		}
	}
}

func (q *queryCache) clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.store.Clear()
	q.keys = make(map[string]struct{})
}

func (q *queryCache) close() {
	q.store.Close()
}

// related reports whether a and b are equal or one is a segment-prefix of the other.
func related(a, b string) bool {
	a, b = strings.TrimRight(a, "/"), strings.TrimRight(b, "/")
	if len(a) > len(b) {
		a, b = b, a
	}
	return b == a || strings.HasPrefix(b, a+"/")
}

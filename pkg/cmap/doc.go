// Package cmap provides a string-keyed concurrent map split into shards.
//
// Keys are assigned to shards by their murmur3 hash, so each shard has its
// own RWMutex and unrelated keys do not contend.
//
// Usage:
//
//	m := cmap.New[[]byte]()
//	m.Set("token", raw)
//	val, ok := m.Get("token")
//	keys := m.KeysWithPrefix("prefs/")
package cmap

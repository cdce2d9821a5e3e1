// Package storage provides the persistent key-value store backing the CLI.
//
// The store holds the session token, the refresh token, the cached user and
// UI preferences between invocations. Implementations:
//
//   - BadgerStore: a Badger v3 directory under the user's config dir
//   - MemoryStore: a sharded map, selected by store.in_memory
//   - Sealed: wraps any KV and encrypts values with XChaCha20-Poly1305
package storage

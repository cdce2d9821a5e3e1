package storage

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Open opens the store described by cfg: a MemoryStore when InMemory is
// set, a BadgerStore otherwise. Either is sealed when an encryption key is
// set. Badger size gauges are registered on reg when it is not nil.
func Open(ctx context.Context, cfg Config, logger *slog.Logger, reg prometheus.Registerer) (KV, error) {
	var kv KV
	if cfg.InMemory {
		kv = NewMemory()
	} else {
		db, err := OpenBadger(cfg, logger)
		if err != nil {
			return nil, err
		}
		if reg != nil {
			db.RegisterMetrics(reg)
		}
		kv = db
	}
	if cfg.EncryptionKey == "" {
		return kv, nil
	}

	sealed, err := NewSealed(ctx, kv, cfg.EncryptionKey)
	if err != nil {
		kv.Close()
		return nil, err
	}
	return sealed, nil
}

// Compact reclaims disk space when the store beneath kv supports it and
// returns the number of collection cycles run.
func Compact(ctx context.Context, kv KV) (int, error) {
	for {
		switch s := kv.(type) {
		case interface {
			GC(context.Context) (int, error)
		}:
			return s.GC(ctx)
		case interface{ Unwrap() KV }:
			kv = s.Unwrap()
		default:
			return 0, nil
		}
	}
}

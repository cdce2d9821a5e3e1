package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/dgraph-io/badger/v3"
	"github.com/prometheus/client_golang/prometheus"
)

// BadgerStore implements KV on Badger v3.
type BadgerStore struct {
	db     *badger.DB
	logger *slog.Logger
	closed atomic.Bool
}

// OpenBadger opens (or creates) the store described by cfg.
func OpenBadger(cfg Config, logger *slog.Logger) (*BadgerStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Dir == "" {
		return nil, fmt.Errorf("badger: dir is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("badger: create dir: %w", err)
	}

	// A handful of keys, opened once per command. The memtable keeps
	// Badger's default size: its batch limit must stay above ValueThreshold.
	opts := badger.DefaultOptions(cfg.Dir)
	opts.Logger = &badgerLogger{logger: logger}
	opts.SyncWrites = cfg.SyncWrites
	opts.NumMemtables = 1
	opts.BlockCacheSize = 1 << 20
	opts.IndexCacheSize = 0
	opts.ValueLogFileSize = 16 << 20
	opts.NumVersionsToKeep = 1

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: open db: %w", err)
	}

	logger.Debug("badger store opened", "dir", cfg.Dir)
	return &BadgerStore{db: db, logger: logger}, nil
}

// Get retrieves a value by key.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrKeyNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores a key-value pair.
func (s *BadgerStore) Set(ctx context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Delete removes a key.
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Keys lists keys with the given prefix.
func (s *BadgerStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// GC runs value log garbage collection until nothing is left to rewrite.
// Returns the number of rewrite cycles.
func (s *BadgerStore) GC(ctx context.Context) (int, error) {
	if s.db.Opts().InMemory {
		return 0, nil
	}

	cycles := 0
	for {
		if err := ctx.Err(); err != nil {
			return cycles, err
		}
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return cycles, nil
		}
		if err != nil {
			return cycles, fmt.Errorf("badger: gc: %w", err)
		}
		cycles++
	}
}

// Close closes the database. Further calls return ErrClosed.
func (s *BadgerStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("badger: close db: %w", err)
	}
	return nil
}

// RegisterMetrics exposes store size gauges on registry.
func (s *BadgerStore) RegisterMetrics(registry prometheus.Registerer) *BadgerStore {
	size := func(pick func(lsm, vlog int64) int64) func() float64 {
		return func() float64 {
			if s.closed.Load() {
				return 0
			}
			return float64(pick(s.db.Size()))
		}
	}

	registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "tankmate",
			Subsystem: "store",
			Name:      "lsm_size_bytes",
			Help:      "Local store LSM tree size in bytes",
		}, size(func(lsm, _ int64) int64 { return lsm })),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "tankmate",
			Subsystem: "store",
			Name:      "value_log_size_bytes",
			Help:      "Local store value log size in bytes",
		}, size(func(_, vlog int64) int64 { return vlog })),
	)
	return s
}

// badgerLogger adapts slog.Logger to Badger's Logger interface.
// Badger's info chatter is demoted to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/tankmate-go/internal/core/domain"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	reg := prometheus.NewRegistry()

	cfg := DefaultConfig(dir)
	cfg.EncryptionKey = "correct horse"
	kv, err := Open(ctx, cfg, nil, reg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, ok := kv.(*Sealed); !ok {
		t.Fatalf("Open() = %T, want *Sealed", kv)
	}
	if err := kv.Set(ctx, KeyTheme, []byte("dark")); err != nil {
		t.Fatal(err)
	}
	if _, err := Compact(ctx, kv); err != nil {
		t.Errorf("Compact() error = %v", err)
	}
	if mfs, err := reg.Gather(); err != nil || len(mfs) != 2 {
		t.Errorf("gathered %d families, err %v", len(mfs), err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	cfg.EncryptionKey = "wrong"
	if _, err := Open(ctx, cfg, nil, nil); !errors.Is(err, domain.ErrStoreLocked) {
		t.Errorf("Open(wrong key) error = %v, want ErrStoreLocked", err)
	}
}

func TestOpen_InMemory(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		key    string
		sealed bool
	}{
		{"plain", "", false},
		{"sealed", "correct horse", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			kv, err := Open(ctx, Config{Dir: dir, InMemory: true, EncryptionKey: tt.key}, nil, nil)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer kv.Close()

			inner := kv
			if s, ok := kv.(*Sealed); ok != tt.sealed {
				t.Fatalf("Open() = %T, sealed = %v", kv, tt.sealed)
			} else if ok {
				inner = s.Unwrap()
			}
			if _, ok := inner.(*MemoryStore); !ok {
				t.Fatalf("backend = %T, want *MemoryStore", inner)
			}

			if err := kv.Set(ctx, KeyToken, []byte("abc")); err != nil {
				t.Fatal(err)
			}
			if got, err := kv.Get(ctx, KeyToken); err != nil || string(got) != "abc" {
				t.Errorf("Get() = %q, %v", got, err)
			}
			if entries, _ := os.ReadDir(dir); len(entries) != 0 {
				t.Errorf("in-memory store wrote %d entries to %s", len(entries), dir)
			}
		})
	}
}

func TestOpen_DefaultConfigValues(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(ctx, DefaultConfig(t.TempDir()), nil, nil)
	if err != nil {
		t.Fatalf("Open(DefaultConfig) error = %v", err)
	}
	defer kv.Close()

	large := make([]byte, 2<<20)
	if err := kv.Set(ctx, KeyUser, large); err != nil {
		t.Fatalf("Set(2 MiB) error = %v", err)
	}
	if got, err := kv.Get(ctx, KeyUser); err != nil || len(got) != len(large) {
		t.Errorf("Get() = %d bytes, %v", len(got), err)
	}
}

func TestCompact_Memory(t *testing.T) {
	n, err := Compact(context.Background(), NewMemory())
	if err != nil || n != 0 {
		t.Errorf("Compact(memory) = %d, %v", n, err)
	}
}

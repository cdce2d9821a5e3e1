package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultTimeout bounds the time spent running hooks.
const DefaultTimeout = 5 * time.Second

type hook struct {
	name string
	fn   func(context.Context) error
}

// Handler runs registered hooks on Shutdown.
type Handler struct {
	timeout time.Duration
	mu      sync.Mutex
	hooks   []hook
	once    sync.Once
	err     error
}

// NewHandler creates a Handler. A non-positive timeout uses DefaultTimeout.
func NewHandler(timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{timeout: timeout}
}

// OnShutdown registers fn. Hooks run in reverse order of registration.
func (h *Handler) OnShutdown(name string, fn func(context.Context) error) {
	h.mu.Lock()
	h.hooks = append(h.hooks, hook{name: name, fn: fn})
	h.mu.Unlock()
}

// Shutdown runs every hook once and joins their errors. Later calls return
// the first result.
func (h *Handler) Shutdown(ctx context.Context) error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := append([]hook(nil), h.hooks...)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i].fn(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", hooks[i].name, err))
			}
		}
		h.err = errors.Join(errs...)
	})
	return h.err
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

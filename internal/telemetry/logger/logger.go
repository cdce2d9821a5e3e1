package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Logger is the logging interface used across tankmate.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	// Slog exposes the underlying slog.Logger for adapters (badger, fsnotify watcher).
	Slog() *slog.Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `koanf:"level" yaml:"level"`
	// Format is text (key=value without timestamps) or json.
	Format string `koanf:"format" yaml:"format"`
	// Output defaults to os.Stderr so logs never mix with command output.
	Output io.Writer `koanf:"-" yaml:"-"`
	// AddSource adds the calling file and line.
	AddSource bool `koanf:"add_source" yaml:"add_source"`
}

// DefaultConfig returns the CLI logger configuration: warnings only, human readable.
func DefaultConfig() Config {
	return Config{
		Level:  "warn",
		Format: "text",
		Output: os.Stderr,
	}
}

// level is shared by every logger so SetLevel applies to loggers already
// handed out.
var level = new(slog.LevelVar)

// New creates a logger. It also sets the shared level.
func New(cfg Config) (Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.AddSource}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", "text", "console":
		opts.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			// Terminal output: the shell already shows when a command ran.
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return redactSensitive(a)
		}
		h = slog.NewTextHandler(out, opts)
	case "json":
		opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
			return redactSensitive(a)
		}
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}

	level.Set(ParseLevel(cfg.Level))
	return &handle{sl: slog.New(h)}, nil
}

// SetLevel changes the level of every logger. The REPL calls it when the
// config file changes.
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// CurrentLevel returns the shared level.
func CurrentLevel() slog.Level {
	return level.Level()
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type handle struct {
	sl *slog.Logger
}

func (h *handle) Debug(msg string, args ...any) { h.sl.Debug(msg, args...) }
func (h *handle) Info(msg string, args ...any)  { h.sl.Info(msg, args...) }
func (h *handle) Warn(msg string, args ...any)  { h.sl.Warn(msg, args...) }
func (h *handle) Error(msg string, args ...any) { h.sl.Error(msg, args...) }

func (h *handle) With(args ...any) Logger {
	return &handle{sl: h.sl.With(args...)}
}

func (h *handle) Slog() *slog.Logger {
	return h.sl
}

var fallback atomic.Pointer[Logger]

func init() {
	l, _ := New(DefaultConfig())
	fallback.Store(&l)
}

// SetDefault replaces the logger returned by Default.
func SetDefault(l Logger) {
	if l != nil {
		fallback.Store(&l)
	}
}

// Default returns the process-wide logger.
func Default() Logger {
	return *fallback.Load()
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &handle{sl: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Warn logs through the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs through the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}

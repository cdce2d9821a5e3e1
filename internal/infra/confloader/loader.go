package confloader

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the prefix of recognised environment variables.
const DefaultEnvPrefix = "TANKMATE_"

// Loader merges configuration sources into a koanf instance.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	overrides map[string]any
	noEnv     bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithConfigFile sets the YAML file to read. A missing file is not an error.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// WithOverrides sets dotted keys applied after every other source.
func WithOverrides(values map[string]any) Option {
	return func(l *Loader) {
		l.overrides = values
	}
}

// WithoutEnv skips environment variables, e.g. when rewriting the file.
func WithoutEnv() Option {
	return func(l *Loader) {
		l.noEnv = true
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads file, environment and overrides, then unmarshals into target.
// Fields of target that no source sets keep their current values.
func (l *Loader) Load(target any) error {
	if err := l.LoadFile(l.filePath); err != nil {
		return err
	}
	if !l.noEnv {
		if err := l.LoadEnv(); err != nil {
			return err
		}
	}
	if len(l.overrides) > 0 {
		if err := l.LoadMap(l.overrides); err != nil {
			return err
		}
	}
	if err := l.k.Unmarshal("", target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile merges a YAML file. Empty paths and missing files are skipped.
func (l *Loader) LoadFile(path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load config file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges environment variables carrying the prefix.
// The first underscore after the prefix separates section and key:
// TANKMATE_API_RATE_LIMIT sets api.rate_limit.
func (l *Loader) LoadEnv() error {
	transform := func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
		return strings.Replace(s, "_", ".", 1)
	}
	if err := l.k.Load(env.Provider(l.envPrefix, ".", transform), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap merges dotted keys, e.g. {"api.url": "..."}.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.k.Load(mapProvider(data), nil); err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}
	return nil
}

// String returns a loaded value.
func (l *Loader) String(key string) string {
	return l.k.String(key)
}

// Keys returns every loaded key.
func (l *Loader) Keys() []string {
	return l.k.Keys()
}

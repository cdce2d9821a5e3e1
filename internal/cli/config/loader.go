package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/tankmate-go/internal/infra/confloader"
)

// Load layers the file at path, TANKMATE_* variables and overrides over
// Default. A missing file is not an error.
func Load(path string, overrides map[string]any) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithOverrides(overrides),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML with mode 0600, replacing the file atomically.
func Save(cfg *CLIConfig, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(AsMap(cfg))
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yaml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Merge applies overrides (dotted keys) to a copy of cfg.
func Merge(cfg *CLIConfig, overrides map[string]any) (*CLIConfig, error) {
	merged := *cfg
	if len(overrides) == 0 {
		return &merged, nil
	}
	loader := confloader.NewLoader(confloader.WithoutEnv(), confloader.WithOverrides(overrides))
	if err := loader.Load(&merged); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Set changes one key in the file at path. Environment variables are not
// written back.
func Set(path, key, value string) (*CLIConfig, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	if !IsKey(key) {
		return nil, fmt.Errorf("unknown config key %q", key)
	}
	cfg := Default()
	loader := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithoutEnv(),
		confloader.WithOverrides(map[string]any{key: value}),
	)
	if err := loader.Load(cfg); err != nil {
		return nil, fmt.Errorf("set %s: %w", key, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := Save(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Keys lists the settable keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, 16)
	for section, values := range AsMap(Default()) {
		inner, ok := values.(map[string]any)
		if !ok {
			keys = append(keys, section)
			continue
		}
		for k := range inner {
			keys = append(keys, section+"."+k)
		}
	}
	keys = append(keys, "store.encryption_key")
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key can be set.
func IsKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// AsMap mirrors the koanf keys, with durations in their string form.
func AsMap(cfg *CLIConfig) map[string]any {
	store := map[string]any{
		"dir":         cfg.Store.Dir,
		"in_memory":   cfg.Store.InMemory,
		"sync_writes": cfg.Store.SyncWrites,
	}
	if cfg.Store.EncryptionKey != "" {
		store["encryption_key"] = cfg.Store.EncryptionKey
	}
	api := map[string]any{
		"url":                  cfg.API.BaseURL,
		"version":              cfg.API.Version,
		"timeout":              cfg.API.Timeout.String(),
		"rate_limit":           cfg.API.RateLimit,
		"rate_burst":           cfg.API.RateBurst,
		"cache_ttl":            cfg.API.CacheTTL.String(),
		"disable_retry":        cfg.API.DisableRetry,
		"ca_file":              cfg.API.CAFile,
		"insecure_skip_verify": cfg.API.InsecureSkipVerify,
	}
	return map[string]any{
		"api":    api,
		"output": cfg.Output,
		"store":  store,
		"log": map[string]any{
			"level":      cfg.Log.Level,
			"format":     cfg.Log.Format,
			"add_source": cfg.Log.AddSource,
		},
		"features": map[string]any{
			"debug": cfg.Features.Debug,
		},
	}
}

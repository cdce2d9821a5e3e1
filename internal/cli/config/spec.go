package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yndnr/tankmate-go/internal/client"
	"github.com/yndnr/tankmate-go/internal/storage"
	"github.com/yndnr/tankmate-go/internal/telemetry/logger"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// CLIConfig is the configuration of tankmate-cli.
type CLIConfig struct {
	API      client.Config  `koanf:"api" yaml:"api"`
	Output   string         `koanf:"output" yaml:"output"`
	Store    storage.Config `koanf:"store" yaml:"store"`
	Log      logger.Config  `koanf:"log" yaml:"log"`
	Features Features       `koanf:"features" yaml:"features"`
}

// Features toggles optional behaviour.
type Features struct {
	// Debug logs every request and response status.
	Debug bool `koanf:"debug" yaml:"debug"`
}

// HomeDir returns ~/.tankmate, or ./.tankmate when the home directory is unknown.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tankmate"
	}
	return filepath.Join(home, ".tankmate")
}

// DefaultConfigPath returns ~/.tankmate/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(HomeDir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		API:    client.DefaultConfig(),
		Output: OutputTable,
		Store:  storage.DefaultConfig(filepath.Join(HomeDir(), "data")),
		Log:    logger.DefaultConfig(),
	}
}

// Validate checks values that cannot be fixed by defaults.
func (c *CLIConfig) Validate() error {
	switch c.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("output: unknown format %q (want table, json or yaml)", c.Output)
	}
	if u, err := url.Parse(c.API.APIRoot()); err != nil || u.Host == "" {
		return fmt.Errorf("api.url: invalid URL %q", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: must not be negative")
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit: must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if !c.Store.InMemory && c.Store.Dir == "" {
		return fmt.Errorf("store.dir: required unless store.in_memory is set")
	}
	return nil
}

// EffectiveLogLevel is the configured level, lowered to debug when
// features.debug is set.
func (c *CLIConfig) EffectiveLogLevel() string {
	if c.Features.Debug {
		return "debug"
	}
	return c.Log.Level
}

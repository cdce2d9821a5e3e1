package client

import (
	"strings"
	"time"
)

// Defaults.
const (
	DefaultBaseURL  = "http://localhost:3000"
	DefaultVersion  = "v1"
	DefaultTimeout  = 10 * time.Second
	DefaultCacheTTL = 5 * time.Minute

	maxResponseBytes = 10 << 20
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API origin, without the /api/<version> suffix.
	BaseURL string `koanf:"url" yaml:"url"`

	// Version is the API version path segment.
	Version string `koanf:"version" yaml:"version"`

	// Timeout bounds each request attempt.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout"`

	// UserAgent is sent on every request.
	UserAgent string `koanf:"-" yaml:"-"`

	// RateLimit caps requests per second; 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit" yaml:"rate_limit"`

	// RateBurst is the limiter burst size.
	RateBurst int `koanf:"rate_burst" yaml:"rate_burst"`

	// CacheTTL is how long query results stay fresh; 0 disables the cache.
	CacheTTL time.Duration `koanf:"cache_ttl" yaml:"cache_ttl"`

	// DisableRetry sends queries once.
	DisableRetry bool `koanf:"disable_retry" yaml:"disable_retry"`

	// CAFile adds PEM roots for servers behind a private CA.
	CAFile string `koanf:"ca_file" yaml:"ca_file,omitempty"`

	// InsecureSkipVerify disables TLS certificate verification.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify" yaml:"insecure_skip_verify,omitempty"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Version:   DefaultVersion,
		Timeout:   DefaultTimeout,
		UserAgent: "tankmate-cli",
		RateBurst: 1,
		CacheTTL:  DefaultCacheTTL,
	}
}

// APIRoot returns <url>/api/<version>, adding http:// when no scheme is given.
func (c Config) APIRoot() string {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	version := strings.Trim(c.Version, "/")
	if version == "" {
		version = DefaultVersion
	}
	return base + "/api/" + version
}

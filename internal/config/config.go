package config

import (
	"time"
)

// Config is the top-level configuration container for the kiroku client.
// It is populated by merging values from command-line flags, environment
// variables, and an optional JSON file, in that order of precedence.
//
// Struct tags:
//   - envPrefix — prefix applied to nested env lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type Config struct {
	// Server holds the remote API endpoint settings.
	Server Server `envPrefix:"SERVER_" json:"server,omitempty"`

	// Storage holds local durable storage settings.
	Storage Storage `envPrefix:"STORAGE_" json:"storage,omitempty"`

	// Sync holds background synchronisation settings.
	Sync Sync `envPrefix:"SYNC_" json:"sync,omitempty"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from flags and environment variables.
	// Populated via the KIROKU_CONFIG env variable or the -c/-config flag.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Server holds the remote API endpoint settings.
type Server struct {
	// Address is the base URL of the diary API, e.g. "https://api.example.com".
	// Env: KIROKU_SERVER_ADDRESS
	Address string `env:"ADDRESS" json:"address"`

	// Token is the bearer token presented on authenticated requests.
	// Env: KIROKU_SERVER_TOKEN
	Token string `env:"TOKEN" json:"token"`

	// RequestTimeout bounds every outbound request (e.g. "30s").
	// Env: KIROKU_SERVER_REQUEST_TIMEOUT
	RequestTimeout Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// Storage holds local durable storage settings.
type Storage struct {
	// Path is the directory for the on-disk key-value store holding the
	// outbox and local presets. Env: KIROKU_STORAGE_PATH
	Path string `env:"PATH" json:"path"`
}

// Sync holds background synchronisation settings.
type Sync struct {
	// Interval is the fixed flush interval for the outbox (e.g. "30s").
	// Env: KIROKU_SYNC_INTERVAL
	Interval Duration `env:"INTERVAL" json:"interval"`

	// ProbeInterval is how often connectivity to the server is probed.
	// Env: KIROKU_SYNC_PROBE_INTERVAL
	ProbeInterval Duration `env:"PROBE_INTERVAL" json:"probe_interval"`
}

const (
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = 30 * time.Second
	defaultProbeInterval  = 15 * time.Second
)

func (c *Config) applyDefaults() {
	if c.Server.RequestTimeout.Duration() <= 0 {
		c.Server.RequestTimeout = Duration(defaultRequestTimeout)
	}
	if c.Sync.Interval.Duration() <= 0 {
		c.Sync.Interval = Duration(defaultSyncInterval)
	}
	if c.Sync.ProbeInterval.Duration() <= 0 {
		c.Sync.ProbeInterval = Duration(defaultProbeInterval)
	}
}

func (c *Config) validate() error {
	if c.Server.Address == "" {
		return ErrNoServerAddress
	}
	return nil
}

// Get assembles the client configuration from environment variables and an
// optional JSON file, applies defaults, and validates the result.
func Get() (*Config, error) {
	return GetWithOverrides(nil)
}

// GetWithOverrides is Get with an extra highest-precedence source, used by
// the CLI to layer cobra flag values on top of env and file configuration.
func GetWithOverrides(overrides *Config) (*Config, error) {
	return newBuilder().
		withOverrides(overrides).
		withEnv().
		withJSON().
		build()
}

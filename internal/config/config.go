// Package config assembles the sync client configuration from environment
// variables, command-line overrides, and an optional JSON file, merged in
// that order of precedence.
package config

import (
	"time"
)

// ClientAdapter holds network settings for the remote web API.
type ClientAdapter struct {
	// BaseURL is the root URL of the remote server instance
	// (e.g. "https://play.dhis2.org/demo").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL" json:"base_url"`

	// Username and Password are the Basic credentials sent with every
	// request.
	// Env: ADAPTER_USERNAME / ADAPTER_PASSWORD
	Username string `env:"USERNAME" json:"username"`
	Password string `env:"PASSWORD" json:"password"`

	// RequestTimeout is the per-request timeout for outbound calls.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`
}

// ClientDB contains local database settings.
type ClientDB struct {
	// DSN is the SQLite connection string (a file path, or ":memory:").
	// Env: STORAGE_DATABASE_URI
	DSN string `env:"DATABASE_URI" json:"dsn"`
}

// ClientStorage groups local persistence settings.
type ClientStorage struct {
	DB ClientDB `json:"db"`
}

// ClientSync holds sync engine settings.
type ClientSync struct {
	// Interval is how often the background job re-runs a full sync cycle.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL" json:"interval"`

	// Programs is the set of program UIDs assigned to this client; pulls
	// are always constrained to it. Duplicates and ordering are
	// meaningless.
	// Env: SYNC_PROGRAMS (comma-separated)
	Programs []string `env:"PROGRAMS" envSeparator:"," json:"programs"`
}

// ClientConfig is the top-level configuration of the sync client.
type ClientConfig struct {
	Adapter ClientAdapter `envPrefix:"ADAPTER_" json:"adapter"`
	Storage ClientStorage `envPrefix:"STORAGE_" json:"storage"`
	Sync    ClientSync    `envPrefix:"SYNC_" json:"sync"`

	// JSONFilePath is the optional path to a JSON configuration file merged
	// on top of the values already loaded from the environment and
	// overrides.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// GetClientConfig builds and validates the client configuration. Overrides
// (typically CLI flag values) are merged after environment variables and
// before the optional JSON file, mirroring the builder's precedence.
func GetClientConfig(overrides ...*ClientConfig) (*ClientConfig, error) {
	b := newConfigBuilder().withEnv()
	for _, o := range overrides {
		b = b.withOverride(o)
	}

	return b.withJSON().build()
}

func (c *ClientConfig) applyDefaults() {
	if c.Adapter.RequestTimeout <= 0 {
		c.Adapter.RequestTimeout = 30 * time.Second
	}
	if c.Sync.Interval <= 0 {
		c.Sync.Interval = 5 * time.Minute
	}
}

func (c *ClientConfig) validate() error {
	if c.Adapter.BaseURL == "" {
		return ErrInvalidAdapterConfigs
	}
	if c.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	return nil
}

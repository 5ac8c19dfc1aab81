// Package config assembles the CLI's runtime settings. Sources overlay in
// order: built-in defaults, then environment (optionally loaded from a
// .env file), then a JSON config file, then command-line flags.
package config

import "time"

// Config holds runtime settings for the Dishcovery CLI.
type Config struct {
	// APIBaseURL is the backend origin. Deployment-specific; never
	// hardcoded at call sites.
	APIBaseURL string

	// RequestTimeout bounds every network call end to end. The default
	// tracks the backend's typical cold-start latency.
	RequestTimeout time.Duration

	// StorePath is the local SQLite database holding session state.
	StorePath string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "https://api.dishcovery.app"
	c.RequestTimeout = 30 * time.Second
	c.StorePath = "dishcovery.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays
// environment, JSON (if present) and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

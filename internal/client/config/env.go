package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL = "DISHCOVERY_API_URL"
	EnvTimeout    = "DISHCOVERY_TIMEOUT"
	EnvStorePath  = "DISHCOVERY_STORE"
	EnvLogLevel   = "DISHCOVERY_LOG_LEVEL"
)

// parseEnv overlays Config with environment values. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv(EnvStorePath); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}

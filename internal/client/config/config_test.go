package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{"dishcovery"}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, "https://api.dishcovery.app", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "dishcovery.db", cfg.StorePath)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv(EnvAPIBaseURL, "https://staging.dishcovery.app")
	t.Setenv(EnvTimeout, "10s")

	cfg := LoadConfig()

	assert.Equal(t, "https://staging.dishcovery.app", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_BadEnvTimeoutIgnored(t *testing.T) {
	resetArgs(t)
	t.Setenv(EnvTimeout, "soon")

	cfg := LoadConfig()
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonOverridesEnv(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	data, err := json.Marshal(map[string]any{
		"api_base_url":    "https://json.dishcovery.app",
		"request_timeout": "15s",
		"log_level":       "debug",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, data, 0o600))

	resetArgs(t, "-c", file)
	t.Setenv(EnvAPIBaseURL, "https://env.dishcovery.app")

	cfg := LoadConfig()

	assert.Equal(t, "https://json.dishcovery.app", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"api_base_url":"https://json.dishcovery.app"}`), 0o600))

	resetArgs(t, "-c", file, "-a", "https://flag.dishcovery.app", "-t", "5", "-d", "alt.db")

	cfg := LoadConfig()

	assert.Equal(t, "https://flag.dishcovery.app", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "alt.db", cfg.StorePath)
}

func TestLoadConfig_PartialJsonKeepsOtherSources(t *testing.T) {
	file := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"store_path":"json.db"}`), 0o600))

	resetArgs(t, "-c", file)

	cfg := LoadConfig()

	assert.Equal(t, "json.db", cfg.StorePath)
	assert.Equal(t, "https://api.dishcovery.app", cfg.APIBaseURL, "fields absent from JSON keep earlier values")
}

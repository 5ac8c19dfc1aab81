package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dishcovery/dishcovery/internal/flagx"
	"github.com/dishcovery/dishcovery/internal/timex"
)

// JsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// file specify the timeout either as "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	StorePath      string         `json:"store_path"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays Config with values from the JSON file named by the
// -c/-config flag. Absent file path means no JSON source. Only fields
// present in the file override.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.StorePath != "" {
		cfg.StorePath = jc.StorePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

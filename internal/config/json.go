package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/synthscan/synthscan/internal/flagx"
	"github.com/synthscan/synthscan/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration so the file can say "30s" as well as integer nanoseconds.
// Parsed values are copied into the runtime Config.
type JsonConfig struct {
	DetectorBaseURL     string         `json:"detector_base_url"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	DatabasePath        string         `json:"database_path"`
	KeyringPath         string         `json:"keyring_path"`
	MaxStorageBytes     int64          `json:"max_storage_bytes"`
	Verbose             bool           `json:"verbose"`
}

// parseJson overlays Config with values from a JSON file, when one was named
// via -c or -config. Absent file path means no JSON layer. Read or unmarshal
// errors panic: a config file that exists but cannot be used is a setup
// mistake worth failing loudly on.
//
// Zero-valued fields in the file are treated as "not set" and leave the
// current Config value alone.
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

	if jc.DetectorBaseURL != "" {
		cfg.DetectorBaseURL = jc.DetectorBaseURL
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyringPath != "" {
		cfg.KeyringPath = jc.KeyringPath
	}
	if jc.MaxStorageBytes != 0 {
		cfg.MaxStorageBytes = jc.MaxStorageBytes
	}
	if jc.Verbose {
		cfg.Verbose = true
	}
}

package config

import "time"

// Config holds runtime settings for the synthscan CLI.
//
// Fields:
//   - DetectorBaseURL: base URL of the detector inference API.
//   - APIKey: bearer key for the detector API. Comes from the environment or
//     the local keyring, never from flags or the JSON file.
//   - RequestTimeout: per-request budget for analysis calls.
//   - OnlineCheckInterval: how often the client probes detector reachability.
//   - DatabasePath: SQLite file holding the analysis history.
//   - KeyringPath: encrypted file holding the stored API key.
//   - MaxStorageBytes: history storage budget in bytes; 0 disables the cap.
//   - Verbose: enables debug-level logging.
type Config struct {
	DetectorBaseURL     string
	APIKey              string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	DatabasePath        string
	KeyringPath         string
	MaxStorageBytes     int64
	Verbose             bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DetectorBaseURL = "http://127.0.0.1:8480"
	c.RequestTimeout = 60 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
	c.DatabasePath = "synthscan.db"
	c.KeyringPath = "synthscan.keys"
	c.MaxStorageBytes = 5 << 20
	c.Verbose = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file when one exists),
// and command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

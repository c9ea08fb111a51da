package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment. A .env
// file in the working directory is loaded first, without overriding variables
// that are already exported. Empty values count as unset.
//
// Recognized variables:
//
//	SYNTHSCAN_DETECTOR_URL       base URL of the detector API
//	SYNTHSCAN_API_KEY            bearer key for the detector API
//	SYNTHSCAN_REQUEST_TIMEOUT    Go duration, e.g. "90s"
//	SYNTHSCAN_CHECK_INTERVAL     Go duration, e.g. "1m"
//	SYNTHSCAN_DATABASE           path to the history database file
//	SYNTHSCAN_KEYRING            path to the encrypted key file
//	SYNTHSCAN_MAX_STORAGE_BYTES  history storage budget in bytes
//	SYNTHSCAN_VERBOSE            "1" or "true" to enable debug logging
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SYNTHSCAN_DETECTOR_URL"); v != "" {
		cfg.DetectorBaseURL = v
	}
	if v := os.Getenv("SYNTHSCAN_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SYNTHSCAN_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("SYNTHSCAN_CHECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.OnlineCheckInterval = d
	}
	if v := os.Getenv("SYNTHSCAN_DATABASE"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SYNTHSCAN_KEYRING"); v != "" {
		cfg.KeyringPath = v
	}
	if v := os.Getenv("SYNTHSCAN_MAX_STORAGE_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			panic(err)
		}
		cfg.MaxStorageBytes = n
	}
	if v := os.Getenv("SYNTHSCAN_VERBOSE"); v == "1" || v == "true" {
		cfg.Verbose = true
	}
}

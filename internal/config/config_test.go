package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every SYNTHSCAN_* variable for the duration of the test so
// the developer's shell does not leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SYNTHSCAN_DETECTOR_URL", "SYNTHSCAN_API_KEY", "SYNTHSCAN_REQUEST_TIMEOUT",
		"SYNTHSCAN_CHECK_INTERVAL", "SYNTHSCAN_DATABASE", "SYNTHSCAN_KEYRING",
		"SYNTHSCAN_MAX_STORAGE_BYTES", "SYNTHSCAN_VERBOSE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8480", c.DetectorBaseURL)
	assert.Equal(t, 60*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "synthscan.db", c.DatabasePath)
	assert.Equal(t, "synthscan.keys", c.KeyringPath)
	assert.Equal(t, int64(5<<20), c.MaxStorageBytes)
	assert.False(t, c.Verbose)
	assert.Empty(t, c.APIKey)
}

func TestLoadConfig_UsesDefaultsWithoutSources(t *testing.T) {
	clearEnv(t)
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"synthscan"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:8480", cfg.DetectorBaseURL)
	assert.Equal(t, 30*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_FlagsWinOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNTHSCAN_DETECTOR_URL", "http://env:1111")

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"synthscan", "-a", "http://flag:2222"}

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:2222", cfg.DetectorBaseURL)
}

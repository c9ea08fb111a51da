package config

import (
	"flag"
	"os"
	"time"

	"github.com/synthscan/synthscan/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the detector API
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-d string   path to the history database file
//	-k string   path to the encrypted key file
//	-s int      history storage budget in bytes
//	-v          verbose (debug) logging
//
// The function filters os.Args down to the flags it owns, via
// flagx.FilterArgs, so flags handled elsewhere (such as -c/-config) do not
// interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-i", "-d", "-k", "-s", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DetectorBaseURL, "a", cfg.DetectorBaseURL, "base URL of the detector API")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the history database file")
	fs.StringVar(&cfg.KeyringPath, "k", cfg.KeyringPath, "path to the encrypted key file")
	fs.Int64Var(&cfg.MaxStorageBytes, "s", cfg.MaxStorageBytes, "history storage budget in bytes")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}

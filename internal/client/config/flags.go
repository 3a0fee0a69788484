package config

import (
	"flag"
	"os"
	"time"

	"github.com/sankharanarayanan07/pharmacy-crud-app/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed here are taken from os.Args (flagx.FilterArgs), so
// -c/-config stays with parseJson.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-t", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the pharmacy API")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "access token cache file")
	requestTimeout := fs.Int("r", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}

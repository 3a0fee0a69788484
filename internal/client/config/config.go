package config

import (
	"os"
	"path/filepath"
	"time"
)

const tokenFileName = ".pharmacy-token"

// Config holds runtime settings for the pharmacy CLI.
//
// Fields:
//   - ServerURL: base URL of the REST API.
//   - OnlineCheckInterval: how often the client probes /health.
//   - TokenFile: where the access token survives between runs.
//   - RequestTimeout: upper bound for one API call.
type Config struct {
	ServerURL           string
	OnlineCheckInterval time.Duration
	TokenFile           string
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:4000"
	c.OnlineCheckInterval = 3 * time.Second
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return tokenFileName
	}
	return filepath.Join(home, tokenFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

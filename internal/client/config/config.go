package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the Wayfarer CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - OnlineCheckInterval: how often the client probes backend reachability.
//   - ProbeTimeout: per-probe deadline for the reachability check.
//   - CacheDir: root directory for cached documents and offline map tiles.
//   - DatabasePath: path of the local SQLite store.
//   - LogLevel: minimum log level (debug, info, warn, error).
type Config struct {
	APIBaseURL          string
	OnlineCheckInterval time.Duration
	ProbeTimeout        time.Duration
	CacheDir            string
	DatabasePath        string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults. The cache and database
// live under the user cache directory, falling back to the working directory
// when it cannot be resolved.
func (c *Config) LoadDefaults() {
	base, err := os.UserCacheDir()
	if err != nil {
		base = "."
	}
	root := filepath.Join(base, "wayfarer")

	c.APIBaseURL = "http://127.0.0.1:8080"
	c.OnlineCheckInterval = 3 * time.Second
	c.ProbeTimeout = 2 * time.Second
	c.CacheDir = filepath.Join(root, "cache")
	c.DatabasePath = filepath.Join(root, "wayfarer.db")
	c.LogLevel = "info"
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

package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the quotedesk console.
//
// Fields:
//   - APIBaseURL: backend REST root, e.g. http://localhost:3000/api.
//   - SessionDB: sqlite DSN of the persisted session store.
//   - RequestTimeout: per-request HTTP timeout.
//   - ToastDuration: how long a notification stays visible (0 = until dismissed).
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	SessionDB      string
	RequestTimeout time.Duration
	ToastDuration  time.Duration
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.SessionDB = "quotedesk.db"
	c.RequestTimeout = 30 * time.Second
	c.ToastDuration = 3 * time.Second
	c.LogLevel = "info"
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// (if any), the environment and finally command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}

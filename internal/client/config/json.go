package config

import (
	"encoding/json"
	"os"

	"github.com/salemerge/quotedesk/internal/flagx"
	"github.com/salemerge/quotedesk/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Every field is
// optional; absent fields keep the value from the previous source.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	SessionDB      string          `json:"session_db"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	ToastDuration  *timex.Duration `json:"toast_duration"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or decode errors, the caller is expected to fail start-up.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.ToastDuration != nil {
		cfg.ToastDuration = jc.ToastDuration.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}

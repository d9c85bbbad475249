package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type envConfig struct {
	APIBaseURL     string        `env:"QUOTEDESK_API_URL"`
	SessionDB      string        `env:"QUOTEDESK_SESSION_DB"`
	RequestTimeout time.Duration `env:"QUOTEDESK_REQUEST_TIMEOUT"`
	ToastDuration  time.Duration `env:"QUOTEDESK_TOAST_DURATION"`
	LogLevel       string        `env:"QUOTEDESK_LOG_LEVEL"`
}

// parseEnv overlays cfg with QUOTEDESK_* variables. A .env file in the
// working directory is loaded first; it never overrides variables that are
// already set.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env")

	var ec envConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != "" {
		cfg.APIBaseURL = ec.APIBaseURL
	}
	if ec.SessionDB != "" {
		cfg.SessionDB = ec.SessionDB
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
	// Zero is meaningful here: it selects sticky toasts.
	if _, ok := os.LookupEnv("QUOTEDESK_TOAST_DURATION"); ok {
		cfg.ToastDuration = ec.ToastDuration
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
}

// Package config loads runtime configuration for the quotedesk console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables, after loading a .env file when present.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   backend API base URL
//	-d string   session database DSN
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://api.example.com/api",
//	  "session_db": "quotedesk.db",
//	  "request_timeout": "30s",
//	  "toast_duration": "3s",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	QUOTEDESK_API_URL, QUOTEDESK_SESSION_DB, QUOTEDESK_REQUEST_TIMEOUT,
//	QUOTEDESK_TOAST_DURATION, QUOTEDESK_LOG_LEVEL
package config

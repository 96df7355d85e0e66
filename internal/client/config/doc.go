// Package config loads runtime configuration for the jobtracker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c / --config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a, --server string        backend API base URL
//	-d, --data-dir string      directory for the local database and token file
//	-s, --token-store string   where the session token is kept: sqlite, file or keyring
//	-t, --timeout duration     per-request timeout (0 = none)
//	-r, --rate-limit float     max requests per second (0 = unlimited)
//	-l, --log-level string     debug, info, warn or error
//
// # Config file
//
// Files ending in .yaml or .yml are YAML; anything else is JSON, where
// comments and trailing commas are allowed. Durations are either strings
// like "3s" or integer nanoseconds. Keys left out keep their earlier value:
//
//	{
//	  // local dev backend
//	  "server_url": "http://localhost:5000/api",
//	  "token_store": "keyring",
//	  "request_timeout": "10s",
//	}
//
// Primary API
//
//   - type Config                                  - the settings
//   - func LoadConfig(args []string) (*Config, error) - defaults, file, flags, then Validate
//   - func (*Config) LoadDefaults()                - sets defaults
//
// Note: This package does not read environment variables directly; use the
// config file or flags to configure values.
package config

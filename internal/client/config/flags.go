package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// newFlagSet declares every flag of the CLI, bound to cfg so unset flags
// keep cfg's current values.
func newFlagSet(cfg *Config) *pflag.FlagSet {
	fs := pflag.NewFlagSet("jobtracker", pflag.ContinueOnError)

	fs.StringP("config", "c", "", "path to config file (.json or .yaml)")
	fs.StringVarP(&cfg.ServerURL, "server", "a", cfg.ServerURL, "backend API base URL")
	fs.StringVarP(&cfg.DataDir, "data-dir", "d", cfg.DataDir, "directory for local data")
	fs.StringVarP(&cfg.TokenStore, "token-store", "s", cfg.TokenStore, "session token store: sqlite, file or keyring")
	fs.DurationVarP(&cfg.RequestTimeout, "timeout", "t", cfg.RequestTimeout, "per-request timeout (0 = none)")
	fs.Float64VarP(&cfg.RateLimit, "rate-limit", "r", cfg.RateLimit, "max requests per second (0 = unlimited)")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "log level: debug, info, warn or error")

	return fs
}

// parseFlags overlays cfg with command-line flags. -h/--help surfaces as
// pflag.ErrHelp.
func parseFlags(cfg *Config, args []string) error {
	fs := newFlagSet(cfg)
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("config: unexpected arguments %v", fs.Args())
	}
	return nil
}

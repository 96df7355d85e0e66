package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/jobtracker/internal/client/tokenstore"
	"github.com/dmitrijs2005/jobtracker/internal/logging"
)

// Config holds runtime settings for the jobtracker CLI.
//
// Fields:
//   - ServerURL: base URL of the backend API, e.g. http://localhost:5000/api.
//   - DataDir: holds jobtracker.db and, for the file store, the token file.
//   - TokenStore: token store backend (sqlite, file or keyring).
//   - RequestTimeout: per-request timeout; zero leaves it to the transport.
//   - RateLimit: requests per second; zero disables the limiter.
//   - LogLevel: slog level name.
type Config struct {
	ServerURL      string
	DataDir        string
	TokenStore     string
	RequestTimeout time.Duration
	RateLimit      float64
	LogLevel       string
}

const (
	DefaultServerURL = "http://localhost:5000/api"
	DatabaseFile     = "jobtracker.db"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = DefaultServerURL
	c.DataDir = defaultDataDir()
	c.TokenStore = string(tokenstore.KindSQLite)
	c.RequestTimeout = 0
	c.RateLimit = 0
	c.LogLevel = "warn"
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".jobtracker"
	}
	return filepath.Join(dir, "jobtracker")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any) and the command-line flags in args (without the
// program name). Later sources take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: server url %q must be an http(s) URL", c.ServerURL)
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: data dir is empty")
	}
	if _, err := tokenstore.ParseKind(c.TokenStore); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("config: negative request timeout %s", c.RequestTimeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: negative rate limit %v", c.RateLimit)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DatabasePath is the local SQLite database inside DataDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, DatabaseFile)
}

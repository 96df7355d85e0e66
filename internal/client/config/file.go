package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/flagx"
	"github.com/dmitrijs2005/jobtracker/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for config file unmarshalling.
// Pointer fields tell "absent" from "zero", so a file only overrides the
// keys it sets. Durations use timex.Duration.
type FileConfig struct {
	ServerURL      *string         `json:"server_url" yaml:"server_url"`
	DataDir        *string         `json:"data_dir" yaml:"data_dir"`
	TokenStore     *string         `json:"token_store" yaml:"token_store"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RateLimit      *float64        `json:"rate_limit" yaml:"rate_limit"`
	LogLevel       *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/--config in args.
// Without the flag it does nothing.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	fc, err := decodeFile(path, data)
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	fc.apply(cfg)
	return nil
}

func decodeFile(path string, data []byte) (FileConfig, error) {
	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return fc, err
		}
	default:
		if err := json.Unmarshal(jsonc.ToJSON(data), &fc); err != nil {
			return fc, err
		}
	}
	return fc, nil
}

func (fc FileConfig) apply(cfg *Config) {
	if fc.ServerURL != nil {
		cfg.ServerURL = *fc.ServerURL
	}
	if fc.DataDir != nil {
		cfg.DataDir = *fc.DataDir
	}
	if fc.TokenStore != nil {
		cfg.TokenStore = *fc.TokenStore
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/hackorsnooze/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is a DTO used only for decoding config files. Pointer fields
// tell keys that are absent from keys set to a zero value. timex.Duration
// lets the timeout be written as "3s" or as integer nanoseconds.
type fileConfig struct {
	BaseURL           *string         `json:"base_url" yaml:"base_url"`
	RequestTimeout    *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	RequestsPerSecond *float64        `json:"requests_per_second" yaml:"requests_per_second"`
	StoriesLimit      *int            `json:"stories_limit" yaml:"stories_limit"`
	DatabasePath      *string         `json:"database_path" yaml:"database_path"`
	LogLevel          *string         `json:"log_level" yaml:"log_level"`
	LogFormat         *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the keys present in the file at path. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON. An empty
// path is a no-op.
func parseFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.BaseURL != nil {
		cfg.BaseURL = *fc.BaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *fc.RequestsPerSecond
	}
	if fc.StoriesLimit != nil {
		cfg.StoriesLimit = *fc.StoriesLimit
	}
	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFormat != nil {
		cfg.LogFormat = *fc.LogFormat
	}
}

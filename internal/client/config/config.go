package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/hackorsnooze/internal/flagx"
)

// Config holds runtime settings for the stories CLI.
//
// Units: RequestTimeout is a time.Duration, zero meaning no timeout.
// RequestsPerSecond of zero disables client-side throttling.
type Config struct {
	BaseURL           string        `env:"BASE_URL"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"`
	RequestsPerSecond float64       `env:"RPS"`
	StoriesLimit      int           `env:"STORIES_LIMIT"`
	DatabasePath      string        `env:"DB"`
	LogLevel          string        `env:"LOG_LEVEL"`
	LogFormat         string        `env:"LOG_FORMAT"`
}

const DefaultBaseURL = "https://hack-or-snooze-v3.herokuapp.com"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = DefaultBaseURL
	c.RequestTimeout = 0
	c.RequestsPerSecond = 5
	c.StoriesLimit = 0
	c.DatabasePath = "data/hackorsnooze.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, the config file named by -c/-config (if any) and finally
// the command-line flags in args. Later sources take precedence over earlier
// ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, flagx.ConfigFile(args)); err != nil {
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

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return fmt.Errorf("config: base url is empty")
	case c.RequestTimeout < 0:
		return fmt.Errorf("config: negative request timeout %s", c.RequestTimeout)
	case c.RequestsPerSecond < 0:
		return fmt.Errorf("config: negative requests per second %v", c.RequestsPerSecond)
	case c.StoriesLimit < 0:
		return fmt.Errorf("config: negative stories limit %d", c.StoriesLimit)
	case c.DatabasePath == "":
		return fmt.Errorf("config: database path is empty")
	}
	return nil
}

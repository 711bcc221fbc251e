package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "HACKORSNOOZE_"

// parseEnv overlays cfg with HACKORSNOOZE_* variables. A .env file in the
// working directory is loaded first if present; variables already set in the
// environment win over it. Unset variables leave fields untouched.
func parseEnv(cfg *Config) error {
	_ = godotenv.Load()

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

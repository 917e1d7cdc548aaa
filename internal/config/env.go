package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. All variables share the KIROKU_ prefix; nested structs add their
// own prefixes via the `envPrefix` tags on [Config].
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "KIROKU_"}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

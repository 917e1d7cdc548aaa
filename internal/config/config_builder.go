package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// builder accumulates partial configs from the individual sources and merges
// them with mergo. Earlier sources win: CLI overrides, then env, then the
// JSON file.
type builder struct {
	configs []*Config
	err     error
}

func newBuilder() *builder {
	return &builder{configs: make([]*Config, 0, 3)}
}

func (b *builder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	cfg := new(Config)
	for _, partial := range b.configs {
		if err := mergo.Merge(cfg, partial); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

func (b *builder) withOverrides(overrides *Config) *builder {
	if overrides != nil {
		b.configs = append(b.configs, overrides)
	}
	return b
}

func (b *builder) withEnv() *builder {
	envCfg := &Config{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *builder) withJSON() *builder {
	var jsonPath string
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			jsonPath = cfg.JSONFilePath
			break
		}
	}
	if jsonPath == "" {
		return b
	}

	jsonCfg, err := parseJSON(jsonPath)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.configs = append(b.configs, jsonCfg)
	return b
}

package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Alias1177/Breakout/models"
)

// LoadParams reads strategy parameters from a YAML file. Keys missing from the
// file keep their defaults; an empty path returns the defaults.
func LoadParams(path string) (models.BreakoutConfig, error) {
	cfg := models.DefaultBreakoutConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading params %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing params %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveParams writes cfg as YAML, typically the optimizer's best set
func SaveParams(path string, cfg models.BreakoutConfig) error {
	if path == "" {
		return errors.New("params path is empty")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding params: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing params %s: %w", path, err)
	}
	return nil
}

// Package config loads the demo shell settings from an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Config holds the shell settings a user may keep in a file.
type Config struct {
	Prompt          string            `mapstructure:"prompt"`
	Aliases         map[string]string `mapstructure:"aliases"`
	CatchInterrupts bool              `mapstructure:"catch_interrupts"`
	DrainTimeout    time.Duration     `mapstructure:"drain_timeout"`
	MetricsAddr     string            `mapstructure:"metrics_addr"`
	Debug           bool              `mapstructure:"debug"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Prompt:          "$ ",
		CatchInterrupts: true,
		DrainTimeout:    250 * time.Millisecond,
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := Parse(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg. Keys absent from data keep their value.
func Parse(data []byte, cfg *Config) error {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// Package config loads hop's own configuration file, ~/.hop/config.yaml by
// default. Every field is optional; omitted fields take the documented
// defaults, so a missing file is simply the default configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hop/pkg/index"
)

// Config represents the config.yaml structure.
type Config struct {
	// DataFile overrides the index file location. The HOP_DATA
	// environment variable still wins over this.
	DataFile string `yaml:"data_file,omitempty"`

	Aging AgingConfig `yaml:"aging,omitempty"`

	// Exclude lists directory prefixes that visits are never recorded
	// under.
	Exclude []string `yaml:"exclude,omitempty"`
}

// AgingConfig tunes the rank decay policy.
type AgingConfig struct {
	Ceiling float64 `yaml:"ceiling,omitempty"` // rank total that triggers decay
	Decay   float64 `yaml:"decay,omitempty"`   // multiplier applied to every rank
	Epsilon float64 `yaml:"epsilon,omitempty"` // ranks below this are dropped at write
}

// Default returns the stock configuration.
func Default() Config {
	p := index.DefaultPolicy()
	return Config{
		Aging: AgingConfig{
			Ceiling: p.AgeCeiling,
			Decay:   p.AgeDecay,
			Epsilon: p.PruneEpsilon,
		},
	}
}

// Load reads the configuration at path. A missing file yields Default().
// Omitted fields are filled with defaults; present but invalid values are
// errors.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Aging.Ceiling <= 0 {
		return fmt.Errorf("aging.ceiling must be positive, got %v", c.Aging.Ceiling)
	}
	if c.Aging.Decay <= 0 || c.Aging.Decay >= 1 {
		return fmt.Errorf("aging.decay must be between 0 and 1 exclusive, got %v", c.Aging.Decay)
	}
	if c.Aging.Epsilon < 0 {
		return fmt.Errorf("aging.epsilon must not be negative, got %v", c.Aging.Epsilon)
	}
	return nil
}

// Policy converts the aging section into an index policy.
func (c Config) Policy() index.Policy {
	return index.Policy{
		AgeCeiling:   c.Aging.Ceiling,
		AgeDecay:     c.Aging.Decay,
		PruneEpsilon: c.Aging.Epsilon,
	}
}

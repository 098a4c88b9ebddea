// Package gameconfig loads the factory tuning and reward wiring from YAML.
package gameconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/AccelByte/extend-balloon-factory/pkg/level1"
	"github.com/AccelByte/extend-balloon-factory/pkg/level2"
	"github.com/AccelByte/extend-balloon-factory/pkg/level3"
	"github.com/AccelByte/extend-balloon-factory/pkg/reward"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid game configuration")

// Config represents the complete game configuration.
type Config struct {
	Balloons balloon.Ranges `yaml:"balloons"`
	Level1   Level1Config   `yaml:"level1"`
	Level2   Level2Config   `yaml:"level2"`
	Level3   Level3Config   `yaml:"level3"`
	Rewards  reward.Config  `yaml:"rewards"`
}

type Level1Config struct {
	Sequence []balloon.Color `yaml:"sequence"`
}

type Level2Config struct {
	Target       int             `yaml:"target"`
	TickInterval time.Duration   `yaml:"tick_interval"`
	Weights      balloon.Weights `yaml:"weights"`
}

type Level3Config struct {
	TickInterval time.Duration   `yaml:"tick_interval"`
	DriftMin     time.Duration   `yaml:"drift_min"`
	DriftMax     time.Duration   `yaml:"drift_max"`
	Weights      balloon.Weights `yaml:"weights"`
}

// Default returns the built-in tuning with no reward actions.
func Default() *Config {
	return &Config{
		Balloons: balloon.DefaultRanges(),
		Level1: Level1Config{
			Sequence: append([]balloon.Color(nil), level1.DefaultSequence...),
		},
		Level2: Level2Config{
			Target:       level2.DefaultTarget,
			TickInterval: level2.DefaultTickInterval,
			Weights:      balloon.DefaultWeights(),
		},
		Level3: Level3Config{
			TickInterval: level3.DefaultTickInterval,
			DriftMin:     level3.DefaultDriftMin,
			DriftMax:     level3.DefaultDriftMax,
			Weights:      balloon.DefaultWeights(),
		},
		Rewards: reward.Config{
			Milestones: map[reward.Milestone][]string{},
		},
	}
}

// LoadConfig loads game configuration from a YAML file on top of the defaults.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	config := Default()
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	if err := c.Balloons.Validate(); err != nil {
		return fmt.Errorf("%w: balloons: %w", ErrInvalidConfig, err)
	}

	if len(c.Level1.Sequence) == 0 {
		return fmt.Errorf("%w: level1 sequence is empty", ErrInvalidConfig)
	}
	for i, color := range c.Level1.Sequence {
		if !color.Valid() {
			return fmt.Errorf("%w: level1 sequence[%d]: %w: %q", ErrInvalidConfig, i, balloon.ErrUnknownColor, string(color))
		}
	}

	if c.Level2.Target < 1 {
		return fmt.Errorf("%w: level2 target must be >= 1", ErrInvalidConfig)
	}
	if c.Level2.TickInterval <= 0 {
		return fmt.Errorf("%w: level2 tick_interval must be positive", ErrInvalidConfig)
	}
	if err := c.Level2.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: level2 weights: %w", ErrInvalidConfig, err)
	}

	if c.Level3.TickInterval <= 0 {
		return fmt.Errorf("%w: level3 tick_interval must be positive", ErrInvalidConfig)
	}
	if c.Level3.DriftMin < time.Second || c.Level3.DriftMax < c.Level3.DriftMin {
		return fmt.Errorf("%w: level3 drift window [%v,%v] is invalid", ErrInvalidConfig, c.Level3.DriftMin, c.Level3.DriftMax)
	}
	if err := c.Level3.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: level3 weights: %w", ErrInvalidConfig, err)
	}

	if err := c.Rewards.Validate(); err != nil {
		return fmt.Errorf("%w: rewards: %w", ErrInvalidConfig, err)
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

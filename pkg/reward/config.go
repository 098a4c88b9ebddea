package reward

import (
	"fmt"
	"time"
)

// ActionConfig is the configuration of one reward action, loaded from YAML.
type ActionConfig struct {
	ID         string                 `yaml:"id" json:"id"`
	Name       string                 `yaml:"name" json:"name"`
	Type       string                 `yaml:"type" json:"type"` // e.g. "report_stat"
	Enabled    bool                   `yaml:"enabled" json:"enabled"`
	Retry      *RetryConfig           `yaml:"retry,omitempty" json:"retry,omitempty"`
	Parameters map[string]interface{} `yaml:"parameters" json:"parameters"`
}

// RetryConfig defines retry behavior for failed actions.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	Delay       time.Duration `yaml:"delay" json:"delay"`
	Backoff     string        `yaml:"backoff" json:"backoff"` // "constant", "exponential"
}

// Config is the rewards section of the game configuration.
type Config struct {
	Actions    []ActionConfig         `yaml:"actions" json:"actions"`
	Milestones map[Milestone][]string `yaml:"milestones" json:"milestones"`
}

// Validate checks action definitions and milestone bindings.
func (c *Config) Validate() error {
	ids := make(map[string]bool, len(c.Actions))
	for i, a := range c.Actions {
		if a.ID == "" {
			return fmt.Errorf("%w: action %d has no id", ErrInvalidConfig, i)
		}
		if a.Type == "" {
			return fmt.Errorf("%w: action %s has no type", ErrInvalidConfig, a.ID)
		}
		if ids[a.ID] {
			return fmt.Errorf("%w: duplicate action id %s", ErrInvalidConfig, a.ID)
		}
		if a.Retry != nil && a.Retry.MaxAttempts < 1 {
			return fmt.Errorf("%w: action %s retry max_attempts must be >= 1", ErrInvalidConfig, a.ID)
		}
		ids[a.ID] = true
	}

	for m, actionIDs := range c.Milestones {
		if !m.Valid() {
			return fmt.Errorf("%w: unknown milestone %q", ErrInvalidConfig, m)
		}
		for _, id := range actionIDs {
			if !ids[id] {
				return fmt.Errorf("%w: milestone %s references unknown action %s", ErrInvalidConfig, m, id)
			}
		}
	}
	return nil
}

// GetParameterInt retrieves an integer parameter with a default.
// YAML decodes numbers as int, JSON as float64; both are accepted.
func (c *ActionConfig) GetParameterInt(key string, defaultValue int) int {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetParameterString retrieves a string parameter with a default.
func (c *ActionConfig) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *ActionConfig) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}

package reward

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Actions: []ActionConfig{
				{ID: "stat", Type: "report_stat", Enabled: true},
				{ID: "log", Type: "log_milestone", Enabled: true},
			},
			Milestones: map[Milestone][]string{
				Level1Completed: {"stat", "log"},
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty", func(c *Config) { *c = Config{} }, false},
		{"missing id", func(c *Config) { c.Actions[0].ID = "" }, true},
		{"missing type", func(c *Config) { c.Actions[0].Type = "" }, true},
		{"duplicate id", func(c *Config) { c.Actions[1].ID = "stat" }, true},
		{"unknown milestone", func(c *Config) { c.Milestones["level9_done"] = []string{"stat"} }, true},
		{"unknown action", func(c *Config) { c.Milestones[Level3Unlocked] = []string{"nope"} }, true},
		{"bad retry", func(c *Config) { c.Actions[0].Retry = &RetryConfig{MaxAttempts: 0} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestGetParameterInt(t *testing.T) {
	c := ActionConfig{Parameters: map[string]interface{}{
		"yaml": 3,
		"json": float64(4),
		"str":  "5",
	}}

	tests := []struct {
		key  string
		want int
	}{
		{"yaml", 3},
		{"json", 4},
		{"str", 1},
		{"missing", 1},
	}
	for _, tt := range tests {
		if got := c.GetParameterInt(tt.key, 1); got != tt.want {
			t.Errorf("GetParameterInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestMilestoneValid(t *testing.T) {
	for _, m := range Milestones {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	if Milestone("level4_completed").Valid() {
		t.Error("unknown milestone reported valid")
	}
}

package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GRPCPort != 6565 || cfg.HTTPPort != 8000 || cfg.StoreBackend != StoreBackendRedis {
		t.Errorf("defaults = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestParseFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("STATE_TTL", "24h")
	t.Setenv("GAME_SEED", "42")

	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.HTTPPort != 9000 || cfg.StoreBackend != StoreBackendMemory || cfg.StateTTL != 24*time.Hour || cfg.GameSeed != 42 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Parse()
		if err != nil {
			t.Fatal(err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad grpc port", func(c *Config) { c.GRPCPort = 0 }, true},
		{"bad http port", func(c *Config) { c.HTTPPort = 70000 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"bad backend", func(c *Config) { c.StoreBackend = "etcd" }, true},
		{"negative ttl", func(c *Config) { c.StateTTL = -time.Second }, true},
		{"negative session idle ttl", func(c *Config) { c.SessionIdleTTL = -time.Minute }, true},
		{"zero health interval", func(c *Config) { c.HealthInterval = 0 }, true},
		{"ags without credentials", func(c *Config) { c.AGSEnabled = true }, true},
		{"ags with credentials", func(c *Config) {
			c.AGSEnabled = true
			c.ABNamespace, c.ABBaseURL, c.ABClientID, c.ABClientSecret = "ns", "https://example.test", "id", "secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

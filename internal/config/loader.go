// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	for name, port := range map[string]int{
		"GRPC_PORT":    c.GRPCPort,
		"HTTP_PORT":    c.HTTPPort,
		"METRICS_PORT": c.MetricsPort,
	} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", name, port)
		}
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch c.StoreBackend {
	case StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q (must be %s or %s)", c.StoreBackend, StoreBackendRedis, StoreBackendMemory)
	}

	if c.StateTTL < 0 {
		return fmt.Errorf("invalid STATE_TTL: %v (must be >= 0)", c.StateTTL)
	}
	if c.SessionIdleTTL < 0 {
		return fmt.Errorf("invalid SESSION_IDLE_TTL: %v (must be >= 0)", c.SessionIdleTTL)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("invalid HEALTH_CHECK_INTERVAL: %v (must be positive)", c.HealthInterval)
	}

	if c.AGSEnabled {
		required := map[string]string{
			"AB_NAMESPACE":     c.ABNamespace,
			"AB_BASE_URL":      c.ABBaseURL,
			"AB_CLIENT_ID":     c.ABClientID,
			"AB_CLIENT_SECRET": c.ABClientSecret,
		}
		for name, value := range required {
			if value == "" {
				return fmt.Errorf("%s is required when AGS_ENABLED=true", name)
			}
		}
	}

	return nil
}

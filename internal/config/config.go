// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

const (
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
//
// Use struct tags to define:
// - `env:"VAR_NAME"` - the environment variable name
// - `envDefault:"value"` - set a default value
//
// Cross-field rules live in loader.go Validate().
type Config struct {
	// ============================================================
	// Server configuration
	// ============================================================
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8000"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"BalloonFactory"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// ============================================================
	// AccelByte configuration (required when AGS_ENABLED=true)
	// ============================================================
	AGSEnabled     bool   `env:"AGS_ENABLED" envDefault:"false"`
	ABNamespace    string `env:"AB_NAMESPACE"`
	ABBaseURL      string `env:"AB_BASE_URL"`
	ABClientID     string `env:"AB_CLIENT_ID"`
	ABClientSecret string `env:"AB_CLIENT_SECRET"`

	// ============================================================
	// State storage
	// ============================================================
	StoreBackend      string        `env:"STORE_BACKEND" envDefault:"redis"`
	StateTTL          time.Duration `env:"STATE_TTL" envDefault:"0s"`
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	HealthInterval    time.Duration `env:"HEALTH_CHECK_INTERVAL" envDefault:"10s"`

	// ============================================================
	// Game configuration
	// ============================================================
	ConfigPath string `env:"CONFIG_PATH" envDefault:"config/factory.yaml"`
	// GameSeed fixes the random source; 0 seeds from the clock.
	GameSeed int64 `env:"GAME_SEED" envDefault:"0"`
	// SessionIdleTTL drops idle player sessions from memory; 0 keeps them.
	SessionIdleTTL time.Duration `env:"SESSION_IDLE_TTL" envDefault:"10m"`

	// ============================================================
	// Telemetry configuration
	// ============================================================
	OtelEnabled     bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"extend-balloon-factory"`
}

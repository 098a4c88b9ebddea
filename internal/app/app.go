// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/AccelByte/extend-balloon-factory/internal/bootstrap"
	"github.com/AccelByte/extend-balloon-factory/internal/config"
	"github.com/AccelByte/extend-balloon-factory/internal/server"
	"github.com/AccelByte/extend-balloon-factory/pkg/game"
	"github.com/AccelByte/extend-balloon-factory/pkg/gameconfig"
	"github.com/AccelByte/extend-balloon-factory/pkg/handler"
	"github.com/AccelByte/extend-balloon-factory/pkg/service"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
	"github.com/cenkalti/backoff/v4"

	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/factory"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/iam"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/platform"
	"github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/service/social"
	sdkAuth "github.com/AccelByte/accelbyte-go-sdk/services-api/pkg/utils/auth"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	rewardBuiltin "github.com/AccelByte/extend-balloon-factory/pkg/reward/builtin"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	manager           *game.Manager
	grpcServer        *server.GRPCServer
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error

	// AccelByte SDK repositories, shared by every platform service.
	configRepo *sdkAuth.ConfigRepositoryImpl
	tokenRepo  *sdkAuth.TokenRepositoryImpl
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Telemetry, so startup spans have a provider
// 2. AccelByte SDK (only when AGS_ENABLED)
// 3. Redis (only for the redis store backend)
// 4. Game configuration (balloons, levels, rewards)
// 5. Reward dispatcher and game manager
// 6. Servers (HTTP game API, gRPC health, metrics)
//
// When a step fails, everything opened by the earlier steps is released.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}
	defer func() {
		if err != nil {
			app.release(ctx)
		}
	}()

	shutdownTelemetry, err := server.SetupTelemetry(ctx, server.TelemetryConfig{
		Enabled:     cfg.OtelEnabled,
		ServiceName: cfg.OtelServiceName,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}
	app.shutdownTelemetry = shutdownTelemetry

	deps := &rewardBuiltin.Dependencies{}
	if cfg.AGSEnabled {
		if err := app.initAccelByteSDKAuth(); err != nil {
			return nil, fmt.Errorf("failed to init AccelByte SDK: %w", err)
		}
		deps.EntitlementGranter = app.initItemGranter()
		deps.StatUpdater = app.initStatisticService()
	} else {
		logrus.Info("AGS disabled; reward actions run in dry-run mode")
	}

	if cfg.StoreBackend == config.StoreBackendRedis {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	gameConfig, err := gameconfig.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config from %s: %w", cfg.ConfigPath, err)
	}
	logrus.Infof("loaded game configuration from %s", cfg.ConfigPath)

	dispatcher, _, err := bootstrap.InitRewards(gameConfig.Rewards, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to init rewards: %w", err)
	}

	app.manager = game.NewManager(ctx, game.Options{
		Config:   gameConfig,
		Store:    bootstrap.InitStore(cfg, app.redisClient),
		Seed:     cfg.GameSeed,
		Notifier: dispatcher,
		IdleTTL:  cfg.SessionIdleTTL,
	})

	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, handler.NewGame(app.manager).Routes())
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup HTTP server: %w", err)
	}

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, state.NewHealthChecker(app.redisClient), cfg.HealthInterval)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// release closes what a partially initialized App holds. Setup opens no
// listeners, so servers need no cleanup here.
func (a *App) release(ctx context.Context) {
	if a.manager != nil {
		_ = a.manager.Close(ctx)
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logrus.Errorf("Redis close error: %v", err)
		}
		a.redisClient = nil
	}
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			logrus.Errorf("telemetry shutdown error: %v", err)
		}
		a.shutdownTelemetry = nil
	}
}

// initAccelByteSDKAuth logs the service in with its client credentials
// (AB_BASE_URL, AB_CLIENT_ID, AB_CLIENT_SECRET). The token refreshes at 80%
// of its TTL. configRepo and tokenRepo must be reused by every platform
// service to share the session.
func (a *App) initAccelByteSDKAuth() error {
	a.configRepo = sdkAuth.DefaultConfigRepositoryImpl()
	a.tokenRepo = sdkAuth.DefaultTokenRepositoryImpl()
	refreshRepo := &sdkAuth.RefreshTokenImpl{AutoRefresh: true, RefreshRate: 0.8}

	oauthService := iam.OAuth20Service{
		Client:                 factory.NewIamClient(a.configRepo),
		ConfigRepository:       a.configRepo,
		TokenRepository:        a.tokenRepo,
		RefreshTokenRepository: refreshRepo,
	}

	clientID := a.configRepo.GetClientId()
	clientSecret := a.configRepo.GetClientSecret()

	if err := oauthService.LoginClient(&clientID, &clientSecret); err != nil {
		return fmt.Errorf("unable to login using clientId and clientSecret: %w", err)
	}

	logrus.Info("AccelByte SDK initialized and authenticated")
	return nil
}

// initRedis connects to Redis, retrying the first ping with exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := pingWithRetry(ctx, client, a.cfg.RedisMaxRetries, time.Duration(a.cfg.RedisRetryDelayMs)*time.Millisecond); err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

func pingWithRetry(ctx context.Context, client *redis.Client, maxRetries int, initialDelay time.Duration) error {
	b := backoff.NewExponentialBackOff()
	if initialDelay > 0 {
		b.InitialInterval = initialDelay
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(maxRetries)), ctx)

	return backoff.Retry(
		func() error {
			if _, err := client.Ping(ctx).Result(); err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		policy,
	)
}

// initItemGranter creates the entitlement service behind grant_item.
func (a *App) initItemGranter() service.EntitlementGranter {
	fulfillmentService := &platform.FulfillmentService{
		Client:           factory.NewPlatformClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return service.NewEntitlementService(fulfillmentService, service.PlatformConfig{
		Namespace: a.cfg.ABNamespace,
	})
}

// initStatisticService creates the statistic service behind report_stat.
func (a *App) initStatisticService() service.StatisticUpdater {
	statisticService := &social.UserStatisticService{
		Client:           factory.NewSocialClient(a.configRepo),
		ConfigRepository: a.configRepo,
		TokenRepository:  a.tokenRepo,
	}

	return service.NewStatisticService(statisticService, service.PlatformConfig{
		Namespace: a.cfg.ABNamespace,
	})
}

// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker reports whether the game state backend is reachable.
type HealthChecker struct {
	client *redis.Client
}

// NewHealthChecker creates a health checker. A nil client means the
// in-memory store is in use, which is always healthy.
func NewHealthChecker(client *redis.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Check pings Redis.
func (h *HealthChecker) Check(ctx context.Context) error {
	if h.client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if _, err := h.client.Ping(ctx).Result(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}

	logrus.Debugf("Redis health check passed")
	return nil
}

// IsHealthy returns true if the backend is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}

// Watch checks health every interval and reports each result to notify
// until ctx is cancelled. The first check runs immediately.
func (h *HealthChecker) Watch(ctx context.Context, interval time.Duration, notify func(healthy bool)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		notify(h.IsHealthy(ctx))

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

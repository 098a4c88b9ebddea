// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"github.com/AccelByte/extend-balloon-factory/internal/config"
	"github.com/AccelByte/extend-balloon-factory/pkg/state"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitStore selects the game state backend. client must be non-nil for
// the redis backend.
func InitStore(cfg *config.Config, client *redis.Client) state.Store {
	if cfg.StoreBackend == config.StoreBackendMemory {
		logrus.Warn("using in-memory game state; progress is lost on restart")
		return state.NewMemoryStore()
	}

	logrus.Infof("using Redis game state (ttl: %v)", cfg.StateTTL)
	return state.NewRedisStore(client, state.RedisStoreConfig{TTL: cfg.StateTTL})
}

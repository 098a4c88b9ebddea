// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// KeyPrefix is the prefix for all game state keys
	KeyPrefix = "balloon_factory:game_state:"
)

// RedisStore implements Store using Redis.
type RedisStore struct {
	client *redis.Client
	cfg    RedisStoreConfig
}

// RedisStoreConfig tunes the Redis store. A zero TTL keeps documents forever.
type RedisStoreConfig struct {
	TTL time.Duration
}

// NewRedisStore creates a new Redis-backed state store.
func NewRedisStore(client *redis.Client, cfg RedisStoreConfig) *RedisStore {
	return &RedisStore{
		client: client,
		cfg:    cfg,
	}
}

// makeKey creates a Redis key for a player
func makeKey(playerID string) string {
	return fmt.Sprintf("%s%s", KeyPrefix, playerID)
}

// Load retrieves the game state for a player from Redis
func (r *RedisStore) Load(ctx context.Context, playerID string) (*GameState, error) {
	key := makeKey(playerID)

	data, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		logrus.Infof("no existing game state for player %s, returning new state", playerID)
		return New(), nil
	}
	if err != nil {
		logrus.Errorf("failed to get game state for player %s: %v", playerID, err)
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	state, err := Decode(data)
	if err != nil {
		logrus.Errorf("failed to decode game state for player %s: %v", playerID, err)
		return nil, err
	}

	logrus.Debugf("retrieved game state for player %s", playerID)
	return state, nil
}

// Save writes the game state for a player to Redis
func (r *RedisStore) Save(ctx context.Context, playerID string, state *GameState) error {
	key := makeKey(playerID)

	data, err := Encode(state)
	if err != nil {
		logrus.Errorf("failed to marshal game state for player %s: %v", playerID, err)
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := r.client.Set(ctx, key, data, r.cfg.TTL).Err(); err != nil {
		logrus.Errorf("failed to set game state for player %s: %v", playerID, err)
		return fmt.Errorf("failed to set state: %w", err)
	}

	logrus.Debugf("saved game state for player %s", playerID)
	return nil
}

// Delete removes the game state for a player from Redis
func (r *RedisStore) Delete(ctx context.Context, playerID string) error {
	key := makeKey(playerID)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		logrus.Errorf("failed to delete game state for player %s: %v", playerID, err)
		return fmt.Errorf("failed to delete state: %w", err)
	}

	logrus.Infof("deleted game state for player %s", playerID)
	return nil
}

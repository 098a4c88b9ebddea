// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestRedisStore_Load_NewPlayer(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{})
	state, err := store.Load(context.Background(), "new-player")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if state.UnlockedLevels != 1 {
		t.Errorf("UnlockedLevels = %d, expected 1", state.UnlockedLevels)
	}
	if state.L3.Temperature != DefaultTemperature {
		t.Errorf("L3.Temperature = %d, expected %d", state.L3.Temperature, DefaultTemperature)
	}
	if len(state.L1.Stats) != len(balloon.Colors) {
		t.Errorf("L1.Stats has %d colors, expected %d", len(state.L1.Stats), len(balloon.Colors))
	}
}

func TestRedisStore_SaveAndLoad(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})

	state := New()
	state.UnlockedLevels = 3
	state.Tutorial.L2 = 4
	state.L1.BestScore = 57
	state.L2.Stats.Apply(balloon.Outcome{Color: balloon.Red, Pumps: 8, Score: 8})
	state.L2.PushStrategyRecord(NewStrategyRecord(time.Now(), state.L2.Strategy, state.L2.Stats, 1))
	state.L3.Temperature = 33

	if err := store.Save(ctx, "player-1", state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load(ctx, "player-1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, expected %d", loaded.SchemaVersion, CurrentSchemaVersion)
	}
	if loaded.UnlockedLevels != 3 {
		t.Errorf("UnlockedLevels = %d, expected 3", loaded.UnlockedLevels)
	}
	if loaded.Tutorial.L2 != 4 {
		t.Errorf("Tutorial.L2 = %d, expected 4", loaded.Tutorial.L2)
	}
	if loaded.L1.BestScore != 57 {
		t.Errorf("L1.BestScore = %d, expected 57", loaded.L1.BestScore)
	}
	if got := loaded.L2.Stats[balloon.Red]; got.Score != 8 || got.Count != 1 {
		t.Errorf("L2.Stats[red] = %+v, expected score 8 count 1", got)
	}
	if len(loaded.L2.PastStrategies) != 1 {
		t.Errorf("PastStrategies length = %d, expected 1", len(loaded.L2.PastStrategies))
	}
	if loaded.L3.Temperature != 33 {
		t.Errorf("L3.Temperature = %d, expected 33", loaded.L3.Temperature)
	}
}

func TestRedisStore_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()
	store := NewRedisStore(client, RedisStoreConfig{})

	if err := store.Save(ctx, "player-delete", New()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !mr.Exists(makeKey("player-delete")) {
		t.Fatal("state should exist before deletion")
	}

	if err := store.Delete(ctx, "player-delete"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if mr.Exists(makeKey("player-delete")) {
		t.Error("state should not exist after deletion")
	}
}

func TestRedisStore_TTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	noTTL := NewRedisStore(client, RedisStoreConfig{})
	if err := noTTL.Save(ctx, "forever", New()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ttl := mr.TTL(makeKey("forever")); ttl != 0 {
		t.Errorf("TTL = %v, expected none", ttl)
	}

	withTTL := NewRedisStore(client, RedisStoreConfig{TTL: 24 * time.Hour})
	if err := withTTL.Save(ctx, "expiring", New()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if ttl := mr.TTL(makeKey("expiring")); ttl != 24*time.Hour {
		t.Errorf("TTL = %v, expected 24h", ttl)
	}
}

func TestRedisStore_Load_Corrupt(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()

	if err := mr.Set(makeKey("broken"), "{not json"); err != nil {
		t.Fatalf("failed to seed key: %v", err)
	}

	store := NewRedisStore(client, RedisStoreConfig{})
	_, err := store.Load(context.Background(), "broken")
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("Load() error = %v, expected ErrCorruptState", err)
	}
}

func TestRedisStore_Load_BackendDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	store := NewRedisStore(client, RedisStoreConfig{})
	if _, err := store.Load(context.Background(), "anyone"); err == nil {
		t.Error("expected error when Redis is unreachable")
	}
}

func TestMakeKey(t *testing.T) {
	expected := KeyPrefix + "test-player"
	if got := makeKey("test-player"); got != expected {
		t.Errorf("makeKey() = %s, expected %s", got, expected)
	}
}

func TestHealthChecker(t *testing.T) {
	client, mr := setupTestRedis(t)

	checker := NewHealthChecker(client)
	if !checker.IsHealthy(context.Background()) {
		t.Error("expected healthy while miniredis is running")
	}

	mr.Close()
	if checker.IsHealthy(context.Background()) {
		t.Error("expected unhealthy after miniredis stopped")
	}

	if !NewHealthChecker(nil).IsHealthy(context.Background()) {
		t.Error("nil client should always be healthy")
	}
}

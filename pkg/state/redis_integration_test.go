// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

//go:build integration

package state

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/go-redis/redis/v8"
)

// Runs against a live Redis: go test -tags integration ./pkg/state/
// REDIS_ADDR defaults to localhost:6379.
func TestRedisStore_Live(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}

	store := NewRedisStore(client, RedisStoreConfig{TTL: time.Minute})
	playerID := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	defer store.Delete(ctx, playerID)

	fresh, err := store.Load(ctx, playerID)
	if err != nil {
		t.Fatalf("load new player: %v", err)
	}
	if fresh.UnlockedLevels != 1 {
		t.Fatalf("expected level 1 unlocked, got %d", fresh.UnlockedLevels)
	}

	fresh.L1.Stats.Apply(balloon.Outcome{Color: balloon.Red, Pumps: 5, Score: 5})
	fresh.L1.BestScore = 5
	fresh.Unlock(2)
	if err := store.Save(ctx, playerID, fresh); err != nil {
		t.Fatalf("save: %v", err)
	}

	ttl, err := client.TTL(ctx, makeKey(playerID)).Result()
	if err != nil || ttl <= 0 {
		t.Errorf("expected a TTL on the key, got %v (%v)", ttl, err)
	}

	loaded, err := store.Load(ctx, playerID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.UnlockedLevels != 2 || loaded.L1.BestScore != 5 {
		t.Errorf("unexpected reloaded state: %+v", loaded)
	}
	if got := loaded.L1.Stats[balloon.Red].Score; got != 5 {
		t.Errorf("expected red score 5, got %d", got)
	}

	if err := store.Delete(ctx, playerID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	again, err := store.Load(ctx, playerID)
	if err != nil {
		t.Fatalf("load after delete: %v", err)
	}
	if again.UnlockedLevels != 1 {
		t.Errorf("expected defaults after delete, got %+v", again)
	}
}

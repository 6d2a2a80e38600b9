// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces revalidation entries inside the shared Valkey DB.
const keyPrefix = "rv:"

// ConnectValkey creates a Valkey client and verifies the connection with a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// ValkeyStore keeps revalidation entries in Valkey, one key per response,
// under "rv:<tag>:<key>".
type ValkeyStore struct {
	client *redis.Client
}

// NewValkeyStore creates a store backed by the given Valkey client.
func NewValkeyStore(client *redis.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

func valkeyKey(tag, key string) string {
	return keyPrefix + tag + ":" + key
}

// Get returns the entry for key under tag. Errors are logged and reported
// as a miss.
func (s *ValkeyStore) Get(ctx context.Context, tag, key string) (*Entry, bool) {
	val, err := s.client.Get(ctx, valkeyKey(tag, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("revalidation cache get error", "tag", tag, "key", key, "error", err)
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(val, &e); err != nil {
		slog.Warn("revalidation cache decode error", "tag", tag, "key", key, "error", err)
		return nil, false
	}
	slog.Debug("revalidation cache hit", "tag", tag, "key", key)
	return &e, true
}

// Set stores entry for ttl. A non-positive ttl stores nothing.
func (s *ValkeyStore) Set(ctx context.Context, tag, key string, entry Entry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		slog.Warn("revalidation cache encode error", "tag", tag, "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, valkeyKey(tag, key), b, ttl).Err(); err != nil {
		slog.Warn("revalidation cache set error", "tag", tag, "key", key, "error", err)
	}
}

// InvalidateTag removes every entry under tag by scanning for its prefix
// and returns how many keys were deleted.
func (s *ValkeyStore) InvalidateTag(ctx context.Context, tag string) int {
	var cursor uint64
	var deleted int
	pattern := keyPrefix + tag + ":*"
	for {
		keys, nextCursor, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("revalidation cache scan error", "tag", tag, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				slog.Warn("revalidation cache bulk delete error", "tag", tag, "error", err)
			}
			deleted += int(n)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	slog.Info("revalidation tag invalidated", "tag", tag, "deleted", deleted)
	return deleted
}

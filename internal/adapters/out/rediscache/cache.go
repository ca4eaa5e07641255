// Package rediscache implements the Cache port on Redis. Every key is
// namespaced with a configured instance prefix so several deployments can
// share one Redis; values are stored as JSON.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements ports.Cache on a go-redis client.
type RedisCache struct {
	client   *redis.Client
	instance string
}

// NewRedisCache creates a cache bound to the given client. The instance name
// prefixes every key, "{instance}:{key}".
func NewRedisCache(client *redis.Client, instance string) *RedisCache {
	return &RedisCache{
		client:   client,
		instance: instance,
	}
}

func (c *RedisCache) namespaced(key string) string {
	return fmt.Sprintf("%s:%s", c.instance, key)
}

// Get reads the value stored under key into dest.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) error {
	raw, err := c.client.Get(ctx, c.namespaced(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}

// Set stores value under key. A zero ttl stores the value without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, c.namespaced(key), raw, ttl).Err()
}

// Remove deletes a key. Removing an absent key is not an error.
func (c *RedisCache) Remove(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.namespaced(key)).Err()
}

// Exists reports whether the key is present.
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.namespaced(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TimeToLive returns the remaining TTL for a key, or nil when the key either
// is absent or carries no expiry.
func (c *RedisCache) TimeToLive(ctx context.Context, key string) (*time.Duration, error) {
	ttl, err := c.client.TTL(ctx, c.namespaced(key)).Result()
	if err != nil {
		return nil, err
	}

	// go-redis reports -2 for an absent key and -1 for a key without expiry.
	if ttl < 0 {
		return nil, nil
	}
	return &ttl, nil
}

// HashGet reads one field of the hash stored under key into dest.
func (c *RedisCache) HashGet(ctx context.Context, key, field string, dest any) error {
	raw, err := c.client.HGet(ctx, c.namespaced(key), field).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.ErrCacheMiss
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}

// HashSet stores one field of the hash under key and refreshes the key's
// time to live.
func (c *RedisCache) HashSet(ctx context.Context, key, field string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	namespaced := c.namespaced(key)
	if err = c.client.HSet(ctx, namespaced, field, raw).Err(); err != nil {
		return err
	}
	if ttl > 0 {
		return c.client.Expire(ctx, namespaced, ttl).Err()
	}
	return nil
}

// HashRemove deletes one field of the hash under key.
func (c *RedisCache) HashRemove(ctx context.Context, key, field string) error {
	return c.client.HDel(ctx, c.namespaced(key), field).Err()
}

// Flush drops every key in this instance's namespace by scanning for the
// prefix, which keeps other instances on the same Redis untouched.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.namespaced("*"), 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Size returns the number of keys in this instance's namespace.
func (c *RedisCache) Size(ctx context.Context) (int64, error) {
	var count int64
	iter := c.client.Scan(ctx, 0, c.namespaced("*"), 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

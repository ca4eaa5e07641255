package ports

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get and HashGet when the key or field is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the low-level key-value cache contract. Implementations namespace
// every key with a configured instance prefix so several deployments can
// share one cache cluster.
//
// Values are JSON-serialized; dest arguments must be pointers.
type Cache interface {
	// Get reads the value stored under key into dest.
	// Returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string, dest any) error

	// Set stores value under key with the given time to live.
	// A zero ttl stores the value without expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Remove deletes a key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// TimeToLive returns the remaining TTL for a key, or nil when the key
	// either is absent or carries no expiry.
	TimeToLive(ctx context.Context, key string) (*time.Duration, error)

	// HashGet reads one field of the hash stored under key into dest.
	// Returns ErrCacheMiss when the key or field is absent.
	HashGet(ctx context.Context, key, field string, dest any) error

	// HashSet stores one field of the hash under key and refreshes the
	// key's time to live.
	HashSet(ctx context.Context, key, field string, value any, ttl time.Duration) error

	// HashRemove deletes one field of the hash under key.
	HashRemove(ctx context.Context, key, field string) error

	// Flush drops every key in this instance's namespace. Administrative.
	Flush(ctx context.Context) error

	// Size returns the number of keys in this instance's namespace. Administrative.
	Size(ctx context.Context) (int64, error)
}

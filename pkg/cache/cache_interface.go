package cache

import (
	"context"
	"time"
)

// Cache is the minimal caching contract the domains depend on.
// The redis implementation lives in internal/infrastructure/cache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ErrCacheMiss is returned by Get when the key does not exist.
type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache: key not found" }

var ErrCacheMiss error = cacheMissError{}

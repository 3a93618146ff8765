package cache

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_cache.go -package=mocks tour-booking/internal/cache Cache

// Cache defines the interface for caching operations.
type Cache interface {
	// Set stores a value in cache with TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Get retrieves a value from cache. Returns false if key doesn't exist.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	// Delete removes keys from cache.
	Delete(ctx context.Context, keys ...string) error
}

// Ensure implementations satisfy Cache
var (
	_ Cache = (*Redis)(nil)
	_ Cache = Nop{}
)

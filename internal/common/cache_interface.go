package common

import (
	"context"
	"time"
)

// CacheInterface defines the contract for cache implementations.
// Values are stored as JSON so both backends hand back independent copies.
type CacheInterface interface {
	// Set stores a value under key for the given duration
	Set(ctx context.Context, key string, value any, duration time.Duration) error

	// Get decodes the cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Exists reports whether key is present without decoding it
	Exists(ctx context.Context, key string) (bool, error)

	Delete(ctx context.Context, key string) error

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

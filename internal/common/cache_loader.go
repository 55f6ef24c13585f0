package common

import (
	"context"
	"strings"
	"time"
	"unicode"

	"agora/backend/internal/logging"

	"golang.org/x/sync/singleflight"
)

// CacheObserver receives hit and miss notifications keyed by key prefix
type CacheObserver interface {
	CacheHit(pattern string)
	CacheMiss(pattern string)
}

// CacheLoader collapses concurrent misses for the same key into one load
type CacheLoader struct {
	cache    CacheInterface
	group    singleflight.Group
	ttl      time.Duration
	observer CacheObserver
}

func NewCacheLoader(cache CacheInterface, ttl time.Duration) *CacheLoader {
	return &CacheLoader{cache: cache, ttl: ttl}
}

func (l *CacheLoader) WithObserver(o CacheObserver) *CacheLoader {
	l.observer = o
	return l
}

func (l *CacheLoader) observe(key string, hit bool) {
	if l.observer == nil {
		return
	}
	pattern := strings.TrimRightFunc(key, unicode.IsDigit)
	if hit {
		l.observer.CacheHit(pattern)
	} else {
		l.observer.CacheMiss(pattern)
	}
}

func (l *CacheLoader) Invalidate(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := l.cache.Delete(ctx, key); err != nil {
			logging.Warn("Cache invalidation failed", "key", key, "error", err)
		}
	}
}

// GetOrLoad returns the cached value for key, or runs load and caches its result.
// Cache failures are logged and fall through to load.
func GetOrLoad[T any](ctx context.Context, l *CacheLoader, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, err := l.cache.Get(ctx, key, &cached)
	if err != nil {
		logging.Warn("Cache read failed", "key", key, "error", err)
	}
	l.observe(key, found)
	if found {
		return cached, nil
	}

	val, err, _ := l.group.Do(key, func() (any, error) {
		// the load is shared by every collapsed caller, so one caller's
		// cancellation must not fail the others
		loadCtx := context.WithoutCancel(ctx)
		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		if err := l.cache.Set(loadCtx, key, v, l.ttl); err != nil {
			logging.Warn("Cache write failed", "key", key, "error", err)
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return val.(T), nil
}

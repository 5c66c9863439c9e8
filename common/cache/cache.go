package cache

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("key not found in cache")
	ErrInvalidValue = errors.New("invalid value for cache")
	ErrClosed       = errors.New("cache is closed")
	ErrInvalidKey   = errors.New("invalid cache key")
)

// Cache is a key-value store with TTL semantics. Implementations must be safe
// for concurrent use. Values are serialized as JSON so entries remain portable
// when the backend is swapped within a TTL window.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Get(ctx context.Context, key string, value interface{}) error

	Delete(ctx context.Context, key string) error

	DeleteByPattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	Clear(ctx context.Context) error

	Close() error
}

type Options struct {
	DefaultTTL time.Duration

	// SlidingWindow extends an entry's expiration on read. Zero disables
	// sliding refresh.
	SlidingWindow time.Duration

	CleanupInterval time.Duration

	RedisURL string

	RedisPassword string

	RedisDB int
}

func DefaultOptions() Options {
	return Options{
		DefaultTTL:      time.Hour,
		SlidingWindow:   time.Minute * 10,
		CleanupInterval: time.Minute * 5,
	}
}

// GetOrSet returns the cached value under key, or invokes producer on a miss
// and stores the result with the given TTL before returning it.
//
// The cache is a performance optimization, never a correctness dependency:
// any failure inside the cache layer is logged and treated as a miss, so the
// call degrades to invoking producer directly. A producer error propagates to
// the caller and nothing is cached. Concurrent misses for the same key may
// each invoke producer; the last write wins.
func GetOrSet[T any](ctx context.Context, c Cache, logger *zap.Logger, key string, ttl time.Duration, producer func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	err := c.Get(ctx, key, &cached)
	if err == nil {
		logger.Debug("cache hit", zap.String("key", key))
		return cached, nil
	}
	if err != ErrNotFound {
		logger.Warn("cache read failed, treating as miss",
			zap.String("key", key),
			zap.Error(err))
	} else {
		logger.Debug("cache miss", zap.String("key", key))
	}

	value, err := producer(ctx)
	if err != nil {
		return value, err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn("cache write failed",
			zap.String("key", key),
			zap.Error(err))
	}

	return value, nil
}

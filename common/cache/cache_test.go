package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentgigs/common/cache"
	"talentgigs/common/cache/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMemoryCache(t *testing.T) cache.Cache {
	t.Helper()
	c := memory.New(cache.Options{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetOrSet_HitNeverInvokesProducer(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(t)
	logger := zap.NewNop()

	calls := 0
	producer := func(ctx context.Context) (string, error) {
		calls++
		return "produced", nil
	}

	first, err := cache.GetOrSet(ctx, c, logger, "key", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, "produced", first)
	assert.Equal(t, 1, calls)

	second, err := cache.GetOrSet(ctx, c, logger, "key", time.Minute, producer)
	require.NoError(t, err)
	assert.Equal(t, "produced", second)
	assert.Equal(t, 1, calls, "producer must not run on a cache hit")
}

func TestGetOrSet_ProducerErrorPropagatesAndNothingCached(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(t)
	logger := zap.NewNop()

	wantErr := errors.New("upstream broken")
	_, err := cache.GetOrSet(ctx, c, logger, "key", time.Minute, func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	require.ErrorIs(t, err, wantErr)

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists, "a failed producer must not populate the cache")
}

func TestGetOrSet_StoresResultWithTTL(t *testing.T) {
	ctx := context.Background()
	c := newMemoryCache(t)
	logger := zap.NewNop()

	_, err := cache.GetOrSet(ctx, c, logger, "key", time.Minute, func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})
	require.NoError(t, err)

	var cached []string
	require.NoError(t, c.Get(ctx, "key", &cached))
	assert.Equal(t, []string{"a", "b"}, cached)
}

// failingCache errors on every operation, standing in for an unreachable
// backend.
type failingCache struct{}

var errStoreDown = errors.New("store down")

func (failingCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errStoreDown
}
func (failingCache) Get(context.Context, string, interface{}) error { return errStoreDown }
func (failingCache) Delete(context.Context, string) error           { return errStoreDown }
func (failingCache) DeleteByPattern(context.Context, string) error  { return errStoreDown }
func (failingCache) Exists(context.Context, string) (bool, error)   { return false, errStoreDown }
func (failingCache) Clear(context.Context) error                    { return errStoreDown }
func (failingCache) Close() error                                   { return nil }

func TestGetOrSet_FailsOpenOnCacheErrors(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	calls := 0
	value, err := cache.GetOrSet(ctx, failingCache{}, logger, "key", time.Minute, func(ctx context.Context) (string, error) {
		calls++
		return "direct", nil
	})
	require.NoError(t, err, "cache failures must be invisible to the caller")
	assert.Equal(t, "direct", value)
	assert.Equal(t, 1, calls)
}

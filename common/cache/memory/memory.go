package memory

import (
	"context"
	"encoding/json"
	"regexp"
	"sync"
	"time"

	"talentgigs/common/cache"
)

type entry struct {
	data      []byte
	expiresAt time.Time
	sliding   time.Duration
}

// Cache is an in-process cache with absolute expiration, an optional sliding
// refresh window and a background janitor.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	opts    cache.Options
	closed  bool
	stop    chan struct{}
}

func New(opts cache.Options) *Cache {
	if opts.DefaultTTL == 0 {
		opts.DefaultTTL = cache.DefaultOptions().DefaultTTL
	}
	if opts.CleanupInterval == 0 {
		opts.CleanupInterval = cache.DefaultOptions().CleanupInterval
	}

	c := &Cache{
		entries: make(map[string]entry),
		opts:    opts,
		stop:    make(chan struct{}),
	}
	go c.janitor()
	return c
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return cache.ErrInvalidValue
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries[key] = entry{
		data:      data,
		expiresAt: time.Now().Add(ttl),
		sliding:   c.opts.SlidingWindow,
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}

	e, ok := c.entries[key]
	if !ok {
		return cache.ErrNotFound
	}
	now := time.Now()
	if now.After(e.expiresAt) {
		delete(c.entries, key)
		return cache.ErrNotFound
	}

	// Read within the sliding window pushes the expiration out.
	if e.sliding > 0 {
		if refreshed := now.Add(e.sliding); refreshed.After(e.expiresAt) {
			e.expiresAt = refreshed
			c.entries[key] = e
		}
	}

	return json.Unmarshal(e.data, value)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	delete(c.entries, key)
	return nil
}

func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	for key := range c.entries {
		if re.MatchString(key) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false, cache.ErrClosed
	}
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return false, nil
	}
	return true, nil
}

func (c *Cache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return cache.ErrClosed
	}
	c.entries = make(map[string]entry)
	return nil
}

func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.stop)
	c.entries = nil
	return nil
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.opts.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

package redis

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"talentgigs/common/cache"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
	opts   cache.Options
}

func New(opts cache.Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.RedisURL,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	return &Cache{client: client, opts: opts}
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return cache.ErrInvalidKey
	}
	if ttl == 0 {
		ttl = c.opts.DefaultTTL
	}
	if ttl == 0 {
		ttl = cache.DefaultOptions().DefaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return cache.ErrInvalidValue
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	val, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return cache.ErrNotFound
	}
	if err != nil {
		return err
	}

	// Sliding refresh: a read within the window pushes the expiration out.
	if c.opts.SlidingWindow > 0 {
		ttl, err := c.client.TTL(ctx, key).Result()
		if err == nil && ttl >= 0 && ttl < c.opts.SlidingWindow {
			c.client.Expire(ctx, key, c.opts.SlidingWindow)
		}
	}

	return json.Unmarshal(val, value)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeleteByPattern(ctx context.Context, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}

	iter := c.client.Scan(ctx, 0, "*", 0).Iterator()
	var matched []string
	for iter.Next(ctx) {
		if re.MatchString(iter.Val()) {
			matched = append(matched, iter.Val())
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(matched) == 0 {
		return nil
	}
	return c.client.Del(ctx, matched...).Err()
}

func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *Cache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

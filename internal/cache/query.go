package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const redisKeyPrefix = "query:"

// Fetcher performs one upstream request for a cache key.
type Fetcher func(ctx context.Context) ([]byte, error)

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type entry struct {
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// QueryCache keeps the last good payload per key and refetches it once it is
// older than the staleness window. Concurrent callers of the same key share a
// single in-flight fetch. A failed fetch leaves the previous entry in place.
type QueryCache struct {
	tracer     trace.Tracer
	staleAfter time.Duration
	redis      RedisClient
	group      singleflight.Group
	now        func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewQueryCache creates a cache. redisClient may be nil to keep entries in memory only.
func NewQueryCache(tracer trace.Tracer, staleAfter time.Duration, redisClient RedisClient) *QueryCache {
	if rc, ok := redisClient.(*redis.Client); ok && rc == nil {
		redisClient = nil
	}
	return &QueryCache{
		tracer:     tracer,
		staleAfter: staleAfter,
		redis:      redisClient,
		now:        time.Now,
		entries:    make(map[string]entry),
	}
}

// StaleAfter returns the staleness window.
func (c *QueryCache) StaleAfter() time.Duration {
	return c.staleAfter
}

// Get returns the payload for key, calling fetch when the cached copy is
// missing or stale.
func (c *QueryCache) Get(ctx context.Context, key string, fetch Fetcher) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "query-cache.get")
	defer span.End()
	span.SetAttributes(attribute.String("key", key))

	if e, ok := c.fresh(key); ok {
		span.SetAttributes(attribute.Bool("hit", true))
		return e.Payload, nil
	}

	v, err, shared := c.group.Do(key, func() (interface{}, error) {
		if e, ok := c.fresh(key); ok {
			return []byte(e.Payload), nil
		}
		if c.redis != nil {
			e, err := c.readRedis(ctx, key)
			if err != nil {
				log.Printf("redis cache read error for %s: %v", key, err)
			}
			if e != nil && c.now().Sub(e.FetchedAt) < c.staleAfter {
				c.store(key, *e)
				return []byte(e.Payload), nil
			}
		}

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		e := entry{Payload: json.RawMessage(data), FetchedAt: c.now()}
		c.store(key, e)
		if c.redis != nil {
			if err := c.writeRedis(ctx, key, e); err != nil {
				log.Printf("redis cache write error for %s: %v", key, err)
			}
		}
		return data, nil
	})
	span.SetAttributes(attribute.Bool("shared", shared))
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Invalidate marks key stale so the next Get refetches. The last good
// payload is kept until that fetch succeeds.
func (c *QueryCache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		e.FetchedAt = time.Time{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	if c.redis != nil {
		if err := c.redis.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
			log.Printf("redis cache delete error for %s: %v", key, err)
		}
	}
}

func (c *QueryCache) fresh(key string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || e.FetchedAt.IsZero() {
		return entry{}, false
	}
	return e, c.now().Sub(e.FetchedAt) < c.staleAfter
}

func (c *QueryCache) store(key string, e entry) {
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *QueryCache) writeRedis(ctx context.Context, key string, e entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, redisKeyPrefix+key, data, c.staleAfter).Err()
}

func (c *QueryCache) readRedis(ctx context.Context, key string) (*entry, error) {
	data, err := c.redis.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

package cache

import (
	"context"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

var (
	newRedisClient = func(opts *redis.Options) *redis.Client {
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
	parseRedisURL = redis.ParseURL
)

// InitRedis connects the optional second cache tier. Redis is never required:
// an empty addr, a bad URL, or a failed ping leaves Client nil and the query
// cache runs from memory alone.
func InitRedis(ctx context.Context, addr string) {
	Client = nil
	addr = strings.TrimSpace(addr)
	if addr == "" {
		log.Println("Redis disabled, query cache is in-memory only")
		return
	}

	opts := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := parseRedisURL(addr)
		if err != nil {
			log.Printf("Warning: failed to parse REDIS_URL, continuing without Redis: %v", err)
			return
		}
		opts = parsed
	}

	client := newRedisClient(opts)
	if err := pingRedis(ctx, client); err != nil {
		log.Printf("Warning: failed to connect to Redis, continuing without it: %v", err)
		_ = client.Close()
		return
	}
	Client = client
	log.Println("Connected to Redis")
}

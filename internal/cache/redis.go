package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis is a Store backed by redis, for deployments that want pollers on
// different instances to share the freshness window. Expiry is delegated to
// redis key TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a redis-backed cache with the given TTL.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get returns the cached data, treating any redis failure as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Error().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return data, true
}

// Put stores data under key. Failures are logged and otherwise ignored.
func (r *Redis) Put(ctx context.Context, key string, data []byte) {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache put failed")
	}
}

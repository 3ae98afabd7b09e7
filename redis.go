package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// initRedis initializes the Redis connection
func initRedis(redisURL string) error {
	opt, err := redis.ParseURL(fmt.Sprintf("redis://%s", redisURL))
	if err != nil {
		// Fallback to simple connection
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	redisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	return nil
}

// cacheKey derives a cache key from the endpoint name and the raw request
// body. Keying on the full input keeps cached responses identical to
// recomputed ones.
func cacheKey(endpoint string, body []byte) string {
	sum := sha256.Sum256(body)
	return endpoint + ":" + hex.EncodeToString(sum[:])
}

// cachedResponse returns the cached response body for key, if any
func cachedResponse(ctx context.Context, key string) ([]byte, bool) {
	if redisClient == nil {
		return nil, false
	}
	data, err := redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// cacheResponse stores a successful response body for key
func cacheResponse(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if redisClient == nil {
		return
	}
	if err := redisClient.SetEx(ctx, key, body, ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to cache response")
	}
}

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tech-hub-api/internal/config"
)

const keyPrefix = "techhub:"

// Redis is a Cache backed by a Redis server
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

var _ Cache = (*Redis)(nil)

// NewRedis connects to Redis and verifies the connection with a PING
func NewRedis(cfg *config.CacheConfig, log zerolog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Dur("ttl", cfg.TTL).Msg("Connected to Redis")

	return &Redis{
		client: client,
		ttl:    cfg.TTL,
		log:    log.With().Str("component", "cache").Logger(),
	}, nil
}

// Get retrieves and decodes an entry. A missing key is a miss, not an error.
// The returned generation is the one callers must hand back to Set.
func (c *Redis) Get(ctx context.Context, namespace, key string, dest interface{}) (int64, bool, error) {
	gen, err := c.generation(ctx, namespace)
	if err != nil {
		return 0, false, err
	}
	dataKey := entryKey(namespace, gen, key)

	data, err := c.client.Get(ctx, dataKey).Bytes()
	if err == redis.Nil {
		return gen, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get key %s: %w", dataKey, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// Undecodable entries are dropped and treated as a miss
		c.client.Del(ctx, dataKey)
		return gen, false, nil
	}
	return gen, true, nil
}

// Set stores value as JSON with the configured TTL under generation gen
func (c *Redis) Set(ctx context.Context, namespace string, gen int64, key string, value interface{}) error {
	dataKey := entryKey(namespace, gen, key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", dataKey, err)
	}

	if err := c.client.Set(ctx, dataKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", dataKey, err)
	}
	return nil
}

// Invalidate bumps the namespace generation
func (c *Redis) Invalidate(ctx context.Context, namespace string) error {
	gen, err := c.client.Incr(ctx, generationKey(namespace)).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate %s: %w", namespace, err)
	}
	c.log.Debug().Str("namespace", namespace).Int64("generation", gen).Msg("Cache invalidated")
	return nil
}

// Close closes the Redis connection
func (c *Redis) Close() error {
	return c.client.Close()
}

func (c *Redis) generation(ctx context.Context, namespace string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if err != nil && err != redis.Nil {
		return 0, fmt.Errorf("failed to read generation of %s: %w", namespace, err)
	}
	return gen, nil
}

func entryKey(namespace string, gen int64, key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s%s:%d:%x", keyPrefix, namespace, gen, hash[:8])
}

func generationKey(namespace string) string {
	return keyPrefix + "gen:" + namespace
}

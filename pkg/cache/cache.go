// Package cache provides a small JSON cache used for read-heavy counters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyDashboard holds the cached dashboard counters.
const KeyDashboard = "dashboard:stats"

// Store is a JSON key/value cache with expiry.
type Store interface {
	// GetJSON decodes the cached value into dst and reports whether the key existed.
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisStore implements Store on a go-redis client.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache.NewRedisClient: %w", err)
	}
	log.Println("Connected to Redis successfully.")
	return client, nil
}

// NewRedisStore creates a store whose keys are namespaced with prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

func (s *RedisStore) GetJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache.GetJSON: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache.GetJSON.Unmarshal: %w", err)
	}
	return true, nil
}

func (s *RedisStore) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache.SetJSON.Marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache.SetJSON: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache.Delete: %w", err)
	}
	return nil
}

// NoopStore never holds anything. It is used when Redis is not configured.
type NoopStore struct{}

func (NoopStore) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }

func (NoopStore) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }

func (NoopStore) Delete(context.Context, ...string) error { return nil }

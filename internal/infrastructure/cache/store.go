package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the key-value cache used by the cached repositories and the
// permission resolver. Keys are logical (unprefixed); implementations
// apply the configured namespace prefix. A ttl of zero means the
// store's default TTL.
type Store interface {
	// Get returns the value for key. The second return value is false
	// on a cache miss.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// AddToIndex registers key as a member of the index set. Indexes
	// track list-cache keys per entity so invalidation does not need a
	// keyspace scan.
	AddToIndex(ctx context.Context, indexKey, key string) error
	// InvalidateIndex deletes every key registered in the index set,
	// then the index itself.
	InvalidateIndex(ctx context.Context, indexKey string) error
}

// RedisStore implements Store on top of a Redis client.
type RedisStore struct {
	client     *redis.Client
	keyPrefix  string
	defaultTTL time.Duration
}

// NewRedisStore creates a Redis-backed store. All keys are prefixed
// with keyPrefix.
func NewRedisStore(client *redis.Client, keyPrefix string, defaultTTL time.Duration) *RedisStore {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisStore{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.keyPrefix + key
	}
	if err := s.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (s *RedisStore) AddToIndex(ctx context.Context, indexKey, key string) error {
	if err := s.client.SAdd(ctx, s.keyPrefix+indexKey, key).Err(); err != nil {
		return fmt.Errorf("cache index add %s: %w", indexKey, err)
	}
	return nil
}

func (s *RedisStore) InvalidateIndex(ctx context.Context, indexKey string) error {
	members, err := s.client.SMembers(ctx, s.keyPrefix+indexKey).Result()
	if err != nil {
		return fmt.Errorf("cache index read %s: %w", indexKey, err)
	}
	if len(members) > 0 {
		if err := s.Delete(ctx, members...); err != nil {
			return err
		}
	}
	if err := s.client.Del(ctx, s.keyPrefix+indexKey).Err(); err != nil {
		return fmt.Errorf("cache index delete %s: %w", indexKey, err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)

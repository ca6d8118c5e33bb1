package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent or the cache is disabled.
var ErrCacheMiss = errors.New("cache miss")

// CacheService wraps Redis with JSON marshalling. A nil client turns every
// operation into a no-op so the application runs without Redis.
type CacheService struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, defaultTTL: defaultTTL}
}

// GetJSON fetches a key and unmarshals it into dest.
func (s *CacheService) GetJSON(ctx context.Context, key string, dest interface{}) error {
	if s == nil || s.client == nil {
		return ErrCacheMiss
	}
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, dest)
}

// SetJSON marshals value and stores it under key with the default TTL.
func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}) error {
	if s == nil || s.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, raw, s.defaultTTL).Err()
}

// Delete removes the given keys.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if s == nil || s.client == nil || len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// FlushAll clears the whole cache database.
func (s *CacheService) FlushAll(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.FlushAll(ctx).Err()
}

// Close releases the underlying connection.
func (s *CacheService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

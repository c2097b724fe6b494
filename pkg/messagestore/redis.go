package messagestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProvider stores entries in Redis, delegating expiry to the
// server's key TTL mechanism.
type RedisProvider struct {
	client *redis.Client
}

// NewRedisProvider creates a provider on an existing Redis client.
func NewRedisProvider(client *redis.Client) *RedisProvider {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &RedisProvider{
		client: client,
	}
}

// Name implements Provider.
func (p *RedisProvider) Name() string {
	return "redis"
}

// Get implements Provider.
func (p *RedisProvider) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Put implements Provider.
func (p *RedisProvider) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := p.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements Provider.
func (p *RedisProvider) Delete(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close implements Provider.
func (p *RedisProvider) Close() error {
	return p.client.Close()
}

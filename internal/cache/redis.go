package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const cardsKeyPrefix = "studybuddy:cards:"

// RedisCache stores drafts as JSON strings in Redis.
type RedisCache struct {
	client *redis.Client
}

var _ Cache = (*RedisCache)(nil)

// NewRedisCache connects to the Redis server at url (redis:// or rediss://)
// and verifies the connection with a PING.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient wraps an existing client without pinging it.
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// GetCards returns nil, nil on a miss.
func (c *RedisCache) GetCards(ctx context.Context, key string) ([]domain.CardDraft, error) {
	data, err := c.client.Get(ctx, cardsKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cards []domain.CardDraft
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("decode cached cards: %w", err)
	}
	return cards, nil
}

// SetCards stores drafts with the given TTL. A zero TTL keeps them until evicted.
func (c *RedisCache) SetCards(ctx context.Context, key string, cards []domain.CardDraft, ttl time.Duration) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode cards: %w", err)
	}

	if err := c.client.Set(ctx, cardsKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

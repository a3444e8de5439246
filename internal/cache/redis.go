package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sjperalta/debtbook-api/internal/models"
)

// RedisCache stores books as JSON under debtbook:book:<user id>
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a connected client
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func bookKey(userID string) string {
	return fmt.Sprintf("debtbook:book:%s", userID)
}

func (c *RedisCache) Get(ctx context.Context, userID string) (*models.Book, bool, error) {
	data, err := c.client.Get(ctx, bookKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get book: %w", err)
	}

	var book models.Book
	if err := json.Unmarshal(data, &book); err != nil {
		// a stale or corrupt entry is a miss
		_ = c.client.Del(ctx, bookKey(userID)).Err()
		return nil, false, nil
	}
	return models.NewBook(book.Debts, book.Payments), true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID string, book *models.Book) error {
	data, err := json.Marshal(book)
	if err != nil {
		return fmt.Errorf("marshal book: %w", err)
	}
	if err := c.client.Set(ctx, bookKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set book: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, bookKey(userID)).Err()
}

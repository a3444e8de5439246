// Package cache keeps each principal's Book between requests. Entries are only
// written after the store has confirmed a change, so a failed mutation never
// shows up here.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sjperalta/debtbook-api/internal/models"
	"github.com/sjperalta/debtbook-api/pkg/logger"
)

// BookCache stores books by user id
type BookCache interface {
	// Get returns a copy of the cached book; ok is false on a miss
	Get(ctx context.Context, userID string) (book *models.Book, ok bool, err error)
	Set(ctx context.Context, userID string, book *models.Book) error
	Delete(ctx context.Context, userID string) error
}

// New returns a Redis-backed cache when addr is set and reachable, and an
// in-memory cache otherwise.
func New(ctx context.Context, addr, password string, ttl time.Duration) BookCache {
	if addr == "" {
		logger.Info("REDIS_ADDR not set, using in-memory book cache")
		return NewMemoryCache(ttl)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis, using in-memory book cache", "addr", addr, "error", err)
		_ = client.Close()
		return NewMemoryCache(ttl)
	}

	logger.Info("Connected to Redis book cache", "addr", addr)
	return NewRedisCache(client, ttl)
}

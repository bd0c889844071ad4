package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pagemark/bookreview/internal/domain"
)

const bookListKey = "books:list"

// BookCache caches the full book listing in Redis. A miss is reported with
// found=false rather than an error so callers can fall through to the store.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache creates a new Redis-backed book list cache.
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{
		client: client,
		ttl:    ttl,
	}
}

// GetList retrieves the cached book listing.
func (c *BookCache) GetList(ctx context.Context) ([]domain.Book, bool, error) {
	data, err := c.client.Get(ctx, bookListKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get book list: %w", err)
	}

	var books []domain.Book
	if err := json.Unmarshal(data, &books); err != nil {
		return nil, false, fmt.Errorf("unmarshal book list: %w", err)
	}

	return books, true, nil
}

// SetList stores the book listing with the configured TTL.
func (c *BookCache) SetList(ctx context.Context, books []domain.Book) error {
	data, err := json.Marshal(books)
	if err != nil {
		return fmt.Errorf("marshal book list: %w", err)
	}

	if err := c.client.Set(ctx, bookListKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set book list: %w", err)
	}

	return nil
}

// Invalidate drops the cached book listing. Called whenever a book or its
// rating rollup changes.
func (c *BookCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, bookListKey).Err(); err != nil {
		return fmt.Errorf("redis del book list: %w", err)
	}

	return nil
}

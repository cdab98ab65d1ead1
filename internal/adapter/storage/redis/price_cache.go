package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// PriceCache implements ports.PriceCache using Redis. Prices are stored as
// decimal strings so no precision is lost crossing the cache boundary.
type PriceCache struct {
	client *goredis.Client
	prefix string
}

// NewPriceCache creates a new Redis-backed product price cache.
func NewPriceCache(client *goredis.Client) *PriceCache {
	return &PriceCache{
		client: client,
		prefix: "price:",
	}
}

// Get retrieves a cached price. The second return is false on a cache miss.
func (c *PriceCache) Get(ctx context.Context, productID uuid.UUID) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+productID.String()).Result()
	if err != nil {
		if err == goredis.Nil {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("redis price get: %w", err)
	}
	price, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parse cached price: %w", err)
	}
	return price, true, nil
}

// Set stores a product price with TTL.
func (c *PriceCache) Set(ctx context.Context, productID uuid.UUID, price decimal.Decimal, ttl time.Duration) error {
	err := c.client.Set(ctx, c.prefix+productID.String(), price.String(), ttl).Err()
	if err != nil {
		return fmt.Errorf("redis price set: %w", err)
	}
	return nil
}

// Invalidate drops a cached price after a product edit.
func (c *PriceCache) Invalidate(ctx context.Context, productID uuid.UUID) error {
	err := c.client.Del(ctx, c.prefix+productID.String()).Err()
	if err != nil {
		return fmt.Errorf("redis price del: %w", err)
	}
	return nil
}

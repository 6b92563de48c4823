// Package cache keeps the fetched catalog in Redis between reloads.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"equishare-storefront/internal/domain"
)

type CatalogCache struct {
	client      *redis.Client
	serviceName string
	ttl         time.Duration
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewCatalogCache(client *redis.Client, serviceName string, ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		client:      client,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

func (c *CatalogCache) key() string {
	return GenerateKey(c.serviceName, "catalog", "all")
}

// Get returns the cached catalog. ok is false on a cache miss.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.CatalogItem, bool, error) {
	raw, err := c.client.Get(ctx, c.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []domain.CatalogItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached catalog: %w", err)
	}
	return items, true, nil
}

func (c *CatalogCache) Set(ctx context.Context, items []domain.CatalogItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), raw, c.ttl).Err()
}

func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}

func (c *CatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func GenerateKey(serviceName, operation, key string) string {
	return fmt.Sprintf("%s:%s:%s", serviceName, operation, key)
}

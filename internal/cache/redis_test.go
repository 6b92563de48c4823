package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "equishare-storefront:catalog:all", GenerateKey("equishare-storefront", "catalog", "all"))
}

func TestCatalogCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewCatalogCache(client, "test", time.Minute)
	ctx := context.Background()

	items, ok, err := c.Get(ctx)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Nil(t, items)

	assert.Error(t, c.Set(ctx, nil))
	assert.Error(t, c.Ping(ctx))
}

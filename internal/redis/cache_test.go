package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedSlab_ToDomain(t *testing.T) {
	slab, err := CachedSlab{ID: "s1", FromKm: "10", ToKm: "50.5", CommissionPercentage: "12.5"}.toDomain()
	require.NoError(t, err)

	assert.Equal(t, "s1", slab.ID)
	assert.True(t, slab.FromKm.Equal(decimal.NewFromInt(10)))
	assert.True(t, slab.ToKm.Equal(decimal.RequireFromString("50.5")))
	assert.True(t, slab.CommissionPercentage.Equal(decimal.RequireFromString("12.5")))

	_, err = CachedSlab{ID: "bad", FromKm: "ten", ToKm: "1", CommissionPercentage: "1"}.toDomain()
	assert.Error(t, err)
}

func TestCacheStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := NewCacheStore(client, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	slabs, err := cache.GetCommissionSlabs(ctx)
	assert.Error(t, err, "connection errors are not cache misses")
	assert.Nil(t, slabs)

	assert.Error(t, cache.InvalidateCommissionSlabs(ctx))
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
)

const commissionSlabsKey = "cache:commission_slabs"

// CacheStore handles reference data caching in Redis.
type CacheStore struct {
	client  *redis.Client
	slabTTL time.Duration
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client, slabTTL time.Duration) *CacheStore {
	return &CacheStore{client: client, slabTTL: slabTTL}
}

// CachedSlab represents a cached commission slab.
type CachedSlab struct {
	ID                   string `json:"id"`
	FromKm               string `json:"from_km"`
	ToKm                 string `json:"to_km"`
	CommissionPercentage string `json:"commission_percentage"`
}

func (c CachedSlab) toDomain() (domain.CommissionSlab, error) {
	from, err := decimal.NewFromString(c.FromKm)
	if err != nil {
		return domain.CommissionSlab{}, err
	}
	to, err := decimal.NewFromString(c.ToKm)
	if err != nil {
		return domain.CommissionSlab{}, err
	}
	pct, err := decimal.NewFromString(c.CommissionPercentage)
	if err != nil {
		return domain.CommissionSlab{}, err
	}

	return domain.CommissionSlab{
		ID:                   c.ID,
		FromKm:               from,
		ToKm:                 to,
		CommissionPercentage: pct,
	}, nil
}

// GetCommissionSlabs retrieves the slab table from cache.
// A cache miss returns nil, nil.
func (s *CacheStore) GetCommissionSlabs(ctx context.Context) ([]domain.CommissionSlab, error) {
	data, err := s.client.Get(ctx, commissionSlabsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached []CachedSlab
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	slabs := make([]domain.CommissionSlab, 0, len(cached))
	for _, c := range cached {
		slab, err := c.toDomain()
		if err != nil {
			return nil, err
		}
		slabs = append(slabs, slab)
	}
	return slabs, nil
}

// SetCommissionSlabs stores the slab table in cache.
func (s *CacheStore) SetCommissionSlabs(ctx context.Context, slabs []domain.CommissionSlab) error {
	cached := make([]CachedSlab, len(slabs))
	for i, slab := range slabs {
		cached[i] = CachedSlab{
			ID:                   slab.ID,
			FromKm:               slab.FromKm.String(),
			ToKm:                 slab.ToKm.String(),
			CommissionPercentage: slab.CommissionPercentage.String(),
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, commissionSlabsKey, data, s.slabTTL).Err()
}

// InvalidateCommissionSlabs removes the slab table from cache.
func (s *CacheStore) InvalidateCommissionSlabs(ctx context.Context) error {
	return s.client.Del(ctx, commissionSlabsKey).Err()
}

package redis

import (
	"context"
	"time"

	"dispatch/internal/domain"
)

// LockStoreInterface defines the interface for distributed locking.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (string, bool, error)
	ReleaseDriverLock(ctx context.Context, driverID, token string) error
}

// SlabCacheInterface defines the interface for commission slab caching.
type SlabCacheInterface interface {
	GetCommissionSlabs(ctx context.Context) ([]domain.CommissionSlab, error)
	SetCommissionSlabs(ctx context.Context, slabs []domain.CommissionSlab) error
	InvalidateCommissionSlabs(ctx context.Context) error
}

// Ensure concrete types implement interfaces.
var (
	_ LockStoreInterface = (*LockStore)(nil)
	_ SlabCacheInterface = (*CacheStore)(nil)
)

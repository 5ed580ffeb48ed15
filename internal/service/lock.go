package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"dispatch/internal/redis"
)

const releaseTimeout = 2 * time.Second

// DriverLocker serializes writers per driver.
type DriverLocker interface {
	// LockDriver blocks until the driver's lock is held or ctx is done. The
	// returned function releases the lock and is safe to defer.
	LockDriver(ctx context.Context, driverID string) (unlock func(), err error)
}

// RetryingLocker implements DriverLocker on top of a lock store, polling
// until the lock is free or the context expires.
type RetryingLocker struct {
	store redis.LockStoreInterface
	ttl   time.Duration
	retry time.Duration
	log   logrus.FieldLogger
}

var _ DriverLocker = (*RetryingLocker)(nil)

// NewRetryingLocker creates a RetryingLocker.
func NewRetryingLocker(store redis.LockStoreInterface, ttl, retry time.Duration, log logrus.FieldLogger) *RetryingLocker {
	return &RetryingLocker{store: store, ttl: ttl, retry: retry, log: log}
}

// LockDriver acquires the driver lock.
func (l *RetryingLocker) LockDriver(ctx context.Context, driverID string) (func(), error) {
	ticker := time.NewTicker(l.retry)
	defer ticker.Stop()

	for {
		token, ok, err := l.store.AcquireDriverLock(ctx, driverID, l.ttl)
		if err != nil {
			return nil, upstream(err)
		}
		if ok {
			return l.unlocker(ctx, driverID, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RetryingLocker) unlocker(ctx context.Context, driverID, token string) func() {
	return func() {
		// Release even when the operation's context has already expired.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		if err := l.store.ReleaseDriverLock(releaseCtx, driverID, token); err != nil {
			l.log.WithError(err).WithField("driver_id", driverID).Warn("release driver lock")
		}
	}
}

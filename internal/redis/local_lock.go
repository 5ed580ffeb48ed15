package redis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalLockStore is an in-process LockStoreInterface for single-instance
// deployments and tests.
type LocalLockStore struct {
	mu   sync.Mutex
	held map[string]localLock
	now  func() time.Time
}

type localLock struct {
	token   string
	expires time.Time
}

var _ LockStoreInterface = (*LocalLockStore)(nil)

// NewLocalLockStore creates a new LocalLockStore.
func NewLocalLockStore() *LocalLockStore {
	return &LocalLockStore{held: make(map[string]localLock), now: time.Now}
}

// AcquireDriverLock takes the driver lock if it is free or expired.
func (s *LocalLockStore) AcquireDriverLock(_ context.Context, driverID string, ttl time.Duration) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if l, ok := s.held[driverID]; ok && now.Before(l.expires) {
		return "", false, nil
	}

	token := uuid.NewString()
	s.held[driverID] = localLock{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

// ReleaseDriverLock frees the driver lock if token still owns it.
func (s *LocalLockStore) ReleaseDriverLock(_ context.Context, driverID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.held[driverID]; ok && l.token == token {
		delete(s.held, driverID)
	}
	return nil
}

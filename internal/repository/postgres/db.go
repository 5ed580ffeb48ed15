package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"dispatch/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)

	_ repository.UnitOfWork = (*Store)(nil)
)

// postgres error codes we translate.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// Store is the PostgreSQL implementation of repository.UnitOfWork.
type Store struct {
	db           *sql.DB
	rides        *RideRepository
	rideRequests *RideRequestRepository
	drivers      *DriverRepository
	catalog      *CatalogRepository
	feedback     *FeedbackRepository
}

// NewStore creates a Store whose repositories run outside any transaction.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:           db,
		rides:        NewRideRepository(db),
		rideRequests: NewRideRequestRepository(db),
		drivers:      NewDriverRepository(db),
		catalog:      NewCatalogRepository(db),
		feedback:     NewFeedbackRepository(db),
	}
}

func (s *Store) Rides() repository.RideRepository               { return s.rides }
func (s *Store) RideRequests() repository.RideRequestRepository { return s.rideRequests }
func (s *Store) Drivers() repository.DriverRepository           { return s.drivers }
func (s *Store) Catalog() repository.CatalogRepository          { return s.catalog }
func (s *Store) Feedback() repository.FeedbackRepository        { return s.feedback }

// txStore exposes repositories bound to one transaction.
type txStore struct {
	rides        *RideRepository
	rideRequests *RideRequestRepository
	drivers      *DriverRepository
	catalog      *CatalogRepository
	feedback     *FeedbackRepository
}

func newTxStore(tx *sql.Tx) *txStore {
	return &txStore{
		rides:        NewRideRepositoryWithTx(tx),
		rideRequests: NewRideRequestRepositoryWithTx(tx),
		drivers:      NewDriverRepositoryWithTx(tx),
		catalog:      &CatalogRepository{q: tx},
		feedback:     &FeedbackRepository{q: tx},
	}
}

func (s *txStore) Rides() repository.RideRepository               { return s.rides }
func (s *txStore) RideRequests() repository.RideRequestRepository { return s.rideRequests }
func (s *txStore) Drivers() repository.DriverRepository           { return s.drivers }
func (s *txStore) Catalog() repository.CatalogRepository          { return s.catalog }
func (s *txStore) Feedback() repository.FeedbackRepository        { return s.feedback }

// WithinTx runs fn inside a SERIALIZABLE transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return translateError(err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newTxStore(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return translateError(err)
	}
	return nil
}

// translateError maps driver errors onto repository sentinels, keeping the
// original error in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %s", repository.ErrDuplicate, pqErr.Constraint)
		case codeSerializationFailure, codeDeadlockDetected:
			return fmt.Errorf("%w: %w", repository.ErrSerialization, err)
		}
	}
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
)

// RideRepository defines the persistence operations for rides.
type RideRepository interface {
	// Create persists a new ride.
	Create(ctx context.Context, ride *domain.Ride) error

	// GetByID retrieves a ride by ID.
	GetByID(ctx context.Context, id string) (*domain.Ride, error)

	// GetForUpdate retrieves a ride by ID and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*domain.Ride, error)

	// Update rewrites every mutable column of an existing ride.
	Update(ctx context.Context, ride *domain.Ride) error

	// FindActiveInWindow returns SCHEDULED or ONGOING rides of the driver on
	// rideDate whose pickup time lies in [from, to], both ends inclusive.
	FindActiveInWindow(ctx context.Context, driverID string, rideDate time.Time, from, to domain.TimeOfDay) ([]*domain.Ride, error)

	// CountActiveByDriver counts SCHEDULED or ONGOING rides of the driver.
	CountActiveByDriver(ctx context.Context, driverID string) (int, error)

	// ListByUser returns rides where the user is the customer or the driver,
	// newest ride date first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Ride, error)

	// ListByDateRange returns rides with ride date in [from, to]. An empty
	// driverID selects every driver.
	ListByDateRange(ctx context.Context, driverID string, from, to time.Time) ([]*domain.Ride, error)

	// SumDriverEarnings totals driver earnings minus penalties in [from, to].
	SumDriverEarnings(ctx context.Context, driverID string, from, to time.Time) (decimal.Decimal, error)

	// SumPlatformEarnings totals platform earnings in [from, to].
	SumPlatformEarnings(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

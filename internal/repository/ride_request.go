package repository

import (
	"context"

	"dispatch/internal/domain"
)

// RideRequestRepository defines the persistence operations for ride requests.
type RideRequestRepository interface {
	// Create persists a new ride request.
	Create(ctx context.Context, req *domain.RideRequest) error

	// GetByID retrieves a ride request by ID.
	GetByID(ctx context.Context, id string) (*domain.RideRequest, error)

	// GetForUpdate retrieves a ride request and locks its row until the
	// surrounding transaction ends.
	GetForUpdate(ctx context.Context, id string) (*domain.RideRequest, error)

	// Update rewrites an existing ride request.
	Update(ctx context.Context, req *domain.RideRequest) error

	// ListPendingByService returns PENDING requests for a vehicle service,
	// ordered by creation time then ID.
	ListPendingByService(ctx context.Context, vehicleServiceID string) ([]*domain.RideRequest, error)
}

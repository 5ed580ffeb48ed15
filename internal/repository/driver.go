package repository

import (
	"context"

	"dispatch/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// GetByID retrieves a driver by ID, including their vehicle if any.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// UpdateVerification stores the verification outcome and duty flag.
	UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, comment string, available bool) error

	// UpdateAvailability sets the stored duty flag.
	UpdateAvailability(ctx context.Context, id string, available bool) error

	// AddVehicle registers the driver's vehicle.
	AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error

	// DeleteVehicle removes the driver's vehicle.
	DeleteVehicle(ctx context.Context, driverID string) error
}

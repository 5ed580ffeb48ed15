package repository

import (
	"context"

	"dispatch/internal/domain"
)

// CatalogRepository serves the reference data rides are built from.
type CatalogRepository interface {
	// GetLocation retrieves a location by ID.
	GetLocation(ctx context.Context, id string) (*domain.Location, error)

	// SetLocationActive opens or closes a location for new requests.
	SetLocationActive(ctx context.Context, id string, active bool) error

	// GetBrandModel retrieves a brand model by ID.
	GetBrandModel(ctx context.Context, id string) (*domain.BrandModel, error)

	// GetVehicleService retrieves a vehicle service class by ID.
	GetVehicleService(ctx context.Context, id string) (*domain.VehicleService, error)
}

// CommissionSlabRepository serves the configured commission slabs.
type CommissionSlabRepository interface {
	// List returns every slab ordered by FromKm ascending.
	List(ctx context.Context) ([]domain.CommissionSlab, error)
}

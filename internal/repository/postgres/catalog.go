package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// CatalogRepository is a PostgreSQL implementation of repository.CatalogRepository.
type CatalogRepository struct {
	q Querier
}

var _ repository.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new PostgreSQL catalog repository.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{q: db}
}

// GetLocation retrieves a location by ID.
func (r *CatalogRepository) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	query := `SELECT id, name, is_active FROM locations WHERE id = $1`

	var loc domain.Location
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&loc.ID, &loc.Name, &loc.IsActive); err != nil {
		return nil, translateError(err)
	}
	return &loc, nil
}

// SetLocationActive opens or closes a location for new requests.
func (r *CatalogRepository) SetLocationActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE locations SET is_active = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, active, id)
	if err != nil {
		return translateError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetBrandModel retrieves a brand model by ID.
func (r *CatalogRepository) GetBrandModel(ctx context.Context, id string) (*domain.BrandModel, error) {
	query := `SELECT id, brand, model, min_year, vehicle_service_id FROM brand_models WHERE id = $1`

	var bm domain.BrandModel
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&bm.ID,
		&bm.Brand,
		&bm.Model,
		&bm.MinYear,
		&bm.VehicleServiceID,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &bm, nil
}

// GetVehicleService retrieves a vehicle service class by ID.
func (r *CatalogRepository) GetVehicleService(ctx context.Context, id string) (*domain.VehicleService, error) {
	query := `SELECT id, name, base_fare, per_km_rate FROM vehicle_services WHERE id = $1`

	var vs domain.VehicleService
	if err := r.q.QueryRowContext(ctx, query, id).Scan(&vs.ID, &vs.Name, &vs.BaseFare, &vs.PerKmRate); err != nil {
		return nil, translateError(err)
	}
	return &vs, nil
}

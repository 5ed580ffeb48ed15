package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// DriverRepository is a PostgreSQL implementation of repository.DriverRepository.
type DriverRepository struct {
	q Querier
}

var _ repository.DriverRepository = (*DriverRepository)(nil)

// NewDriverRepository creates a new PostgreSQL driver repository.
func NewDriverRepository(db *sql.DB) *DriverRepository {
	return &DriverRepository{q: db}
}

// NewDriverRepositoryWithTx creates a driver repository using a transaction.
func NewDriverRepositoryWithTx(tx *sql.Tx) *DriverRepository {
	return &DriverRepository{q: tx}
}

// GetByID retrieves a driver by ID together with their vehicle, if any.
func (r *DriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	query := `
		SELECT d.id, d.user_id, COALESCE(d.licence_number, ''), COALESCE(d.licence_photo, ''),
			d.verification_status, COALESCE(d.verification_comment, ''), d.is_available,
			v.id, v.brand_model_id, v.registration_number, v.year
		FROM drivers d
		LEFT JOIN vehicles v ON v.driver_id = d.id
		WHERE d.id = $1
	`

	var driver domain.Driver
	var vehicleID, brandModelID, registration sql.NullString
	var year sql.NullInt64

	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&driver.ID,
		&driver.UserID,
		&driver.LicenceNumber,
		&driver.LicencePhoto,
		&driver.VerificationStatus,
		&driver.VerificationComment,
		&driver.IsAvailable,
		&vehicleID,
		&brandModelID,
		&registration,
		&year,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if vehicleID.Valid {
		driver.Vehicle = &domain.Vehicle{
			ID:                 vehicleID.String,
			DriverID:           driver.ID,
			BrandModelID:       brandModelID.String,
			RegistrationNumber: registration.String,
			Year:               int(year.Int64),
		}
	}

	return &driver, nil
}

// UpdateVerification stores the review outcome and the duty flag that goes with it.
func (r *DriverRepository) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, comment string, available bool) error {
	query := `
		UPDATE drivers
		SET verification_status = $1, verification_comment = $2, is_available = $3
		WHERE id = $4
	`

	var c sql.NullString
	if comment != "" {
		c = sql.NullString{String: comment, Valid: true}
	}

	return r.execOne(ctx, query, status, c, available, id)
}

// UpdateAvailability sets the stored duty flag.
func (r *DriverRepository) UpdateAvailability(ctx context.Context, id string, available bool) error {
	query := `UPDATE drivers SET is_available = $1 WHERE id = $2`
	return r.execOne(ctx, query, available, id)
}

// AddVehicle registers a vehicle for its driver.
func (r *DriverRepository) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, driver_id, brand_model_id, registration_number, year)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.q.ExecContext(ctx, query,
		vehicle.ID,
		vehicle.DriverID,
		vehicle.BrandModelID,
		vehicle.RegistrationNumber,
		vehicle.Year,
	)
	return translateError(err)
}

// DeleteVehicle removes the driver's vehicle.
func (r *DriverRepository) DeleteVehicle(ctx context.Context, driverID string) error {
	query := `DELETE FROM vehicles WHERE driver_id = $1`
	return r.execOne(ctx, query, driverID)
}

func (r *DriverRepository) execOne(ctx context.Context, query string, args ...any) error {
	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

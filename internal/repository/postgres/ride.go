package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

const rideColumns = `id, request_id, customer_id, driver_id, vehicle_service_id,
	pickup_location_id, dropoff_location_id, ride_date, pickup_time, dropoff_time, status,
	total_km, total_cost, commission_percentage, driver_earning, system_earning,
	cancellation_charge, cancellation_driver_earning, cancellation_system_earning, driver_penalty,
	created_at, updated_at`

// RideRepository is a PostgreSQL implementation of repository.RideRepository.
type RideRepository struct {
	q Querier
}

var _ repository.RideRepository = (*RideRepository)(nil)

// NewRideRepository creates a new PostgreSQL ride repository.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{q: db}
}

// NewRideRepositoryWithTx creates a ride repository using a transaction.
func NewRideRepositoryWithTx(tx *sql.Tx) *RideRepository {
	return &RideRepository{q: tx}
}

func scanRide(s rowScanner) (*domain.Ride, error) {
	var ride domain.Ride
	var dropoff *domain.TimeOfDay

	err := s.Scan(
		&ride.ID,
		&ride.RequestID,
		&ride.CustomerID,
		&ride.DriverID,
		&ride.VehicleServiceID,
		&ride.PickupLocationID,
		&ride.DropoffLocationID,
		&ride.RideDate,
		&ride.PickupTime,
		&dropoff,
		&ride.Status,
		&ride.TotalKm,
		&ride.TotalCost,
		&ride.CommissionPercentage,
		&ride.DriverEarning,
		&ride.SystemEarning,
		&ride.CancellationCharge,
		&ride.CancellationDriverEarning,
		&ride.CancellationSystemEarning,
		&ride.DriverPenalty,
		&ride.CreatedAt,
		&ride.UpdatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	if dropoff != nil {
		ride.DropoffTime = dropoff
	}
	return &ride, nil
}

func collectRides(rows *sql.Rows) ([]*domain.Ride, error) {
	defer rows.Close()

	var rides []*domain.Ride
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, err
		}
		rides = append(rides, ride)
	}
	return rides, rows.Err()
}

// Create persists a new ride.
func (r *RideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	query := `
		INSERT INTO rides (` + rideColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.q.ExecContext(ctx, query,
		ride.ID,
		ride.RequestID,
		ride.CustomerID,
		ride.DriverID,
		ride.VehicleServiceID,
		ride.PickupLocationID,
		ride.DropoffLocationID,
		ride.RideDate,
		ride.PickupTime,
		ride.DropoffTime,
		ride.Status,
		ride.TotalKm,
		ride.TotalCost,
		ride.CommissionPercentage,
		ride.DriverEarning,
		ride.SystemEarning,
		ride.CancellationCharge,
		ride.CancellationDriverEarning,
		ride.CancellationSystemEarning,
		ride.DriverPenalty,
		ride.CreatedAt,
		ride.UpdatedAt,
	)
	return translateError(err)
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1`
	return scanRide(r.q.QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves a ride by ID with a row lock.
func (r *RideRepository) GetForUpdate(ctx context.Context, id string) (*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE id = $1 FOR UPDATE`
	return scanRide(r.q.QueryRowContext(ctx, query, id))
}

// Update rewrites the mutable columns of an existing ride.
func (r *RideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	query := `
		UPDATE rides
		SET dropoff_time = $1, status = $2, total_km = $3, total_cost = $4, commission_percentage = $5,
			driver_earning = $6, system_earning = $7, cancellation_charge = $8,
			cancellation_driver_earning = $9, cancellation_system_earning = $10, driver_penalty = $11,
			updated_at = $12
		WHERE id = $13
	`

	result, err := r.q.ExecContext(ctx, query,
		ride.DropoffTime,
		ride.Status,
		ride.TotalKm,
		ride.TotalCost,
		ride.CommissionPercentage,
		ride.DriverEarning,
		ride.SystemEarning,
		ride.CancellationCharge,
		ride.CancellationDriverEarning,
		ride.CancellationSystemEarning,
		ride.DriverPenalty,
		ride.UpdatedAt,
		ride.ID,
	)
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

// FindActiveInWindow returns the driver's SCHEDULED or ONGOING rides on
// rideDate with pickup time in [from, to].
func (r *RideRepository) FindActiveInWindow(ctx context.Context, driverID string, rideDate time.Time, from, to domain.TimeOfDay) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE driver_id = $1
		  AND ride_date = $2
		  AND status = ANY($3)
		  AND pickup_time BETWEEN $4 AND $5
		ORDER BY pickup_time, id
	`

	rows, err := r.q.QueryContext(ctx, query, driverID, rideDate, activeStatuses(), from, to)
	if err != nil {
		return nil, translateError(err)
	}
	return collectRides(rows)
}

// CountActiveByDriver counts the driver's SCHEDULED or ONGOING rides.
func (r *RideRepository) CountActiveByDriver(ctx context.Context, driverID string) (int, error) {
	query := `SELECT COUNT(*) FROM rides WHERE driver_id = $1 AND status = ANY($2)`

	var count int
	if err := r.q.QueryRowContext(ctx, query, driverID, activeStatuses()).Scan(&count); err != nil {
		return 0, translateError(err)
	}
	return count, nil
}

// ListByUser returns rides in which the user is customer or driver.
func (r *RideRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Ride, error) {
	query := `
		SELECT ` + rideColumns + `
		FROM rides
		WHERE customer_id = $1 OR driver_id = $1
		ORDER BY ride_date DESC, pickup_time DESC, id
	`

	rows, err := r.q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, translateError(err)
	}
	return collectRides(rows)
}

// ListByDateRange returns rides with ride date in [from, to].
func (r *RideRepository) ListByDateRange(ctx context.Context, driverID string, from, to time.Time) ([]*domain.Ride, error) {
	query := `SELECT ` + rideColumns + ` FROM rides WHERE ride_date BETWEEN $1 AND $2`
	args := []any{from, to}
	if driverID != "" {
		query += ` AND driver_id = $3`
		args = append(args, driverID)
	}
	query += ` ORDER BY ride_date, pickup_time, id`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err)
	}
	return collectRides(rows)
}

// SumDriverEarnings totals what the driver earned in [from, to].
func (r *RideRepository) SumDriverEarnings(ctx context.Context, driverID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(driver_earning + cancellation_driver_earning - driver_penalty), 0)
		FROM rides
		WHERE driver_id = $1 AND ride_date BETWEEN $2 AND $3
	`

	var total decimal.Decimal
	if err := r.q.QueryRowContext(ctx, query, driverID, from, to).Scan(&total); err != nil {
		return decimal.Zero, translateError(err)
	}
	return total, nil
}

// SumPlatformEarnings totals what the platform earned in [from, to].
func (r *RideRepository) SumPlatformEarnings(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(system_earning + cancellation_system_earning), 0)
		FROM rides
		WHERE ride_date BETWEEN $1 AND $2
	`

	var total decimal.Decimal
	if err := r.q.QueryRowContext(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, translateError(err)
	}
	return total, nil
}

func activeStatuses() any {
	statuses := make([]string, len(domain.ActiveRideStatuses))
	for i, s := range domain.ActiveRideStatuses {
		statuses[i] = string(s)
	}
	return pq.Array(statuses)
}

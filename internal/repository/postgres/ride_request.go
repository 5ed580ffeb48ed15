package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

const rideRequestColumns = `id, customer_id, vehicle_service_id, pickup_location_id, dropoff_location_id,
	ride_date, pickup_time, status, created_at`

// RideRequestRepository is a PostgreSQL implementation of repository.RideRequestRepository.
type RideRequestRepository struct {
	q Querier
}

var _ repository.RideRequestRepository = (*RideRequestRepository)(nil)

// NewRideRequestRepository creates a new PostgreSQL ride request repository.
func NewRideRequestRepository(db *sql.DB) *RideRequestRepository {
	return &RideRequestRepository{q: db}
}

// NewRideRequestRepositoryWithTx creates a ride request repository using a transaction.
func NewRideRequestRepositoryWithTx(tx *sql.Tx) *RideRequestRepository {
	return &RideRequestRepository{q: tx}
}

func scanRideRequest(s rowScanner) (*domain.RideRequest, error) {
	var req domain.RideRequest
	err := s.Scan(
		&req.ID,
		&req.CustomerID,
		&req.VehicleServiceID,
		&req.PickupLocationID,
		&req.DropoffLocationID,
		&req.RideDate,
		&req.PickupTime,
		&req.Status,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &req, nil
}

// Create persists a new ride request.
func (r *RideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) error {
	query := `
		INSERT INTO ride_requests (` + rideRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		req.ID,
		req.CustomerID,
		req.VehicleServiceID,
		req.PickupLocationID,
		req.DropoffLocationID,
		req.RideDate,
		req.PickupTime,
		req.Status,
		req.CreatedAt,
	)
	return translateError(err)
}

// GetByID retrieves a ride request by ID.
func (r *RideRequestRepository) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	query := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE id = $1`
	return scanRideRequest(r.q.QueryRowContext(ctx, query, id))
}

// GetForUpdate retrieves a ride request by ID with a row lock.
func (r *RideRequestRepository) GetForUpdate(ctx context.Context, id string) (*domain.RideRequest, error) {
	query := `SELECT ` + rideRequestColumns + ` FROM ride_requests WHERE id = $1 FOR UPDATE`
	return scanRideRequest(r.q.QueryRowContext(ctx, query, id))
}

// Update rewrites an existing ride request.
func (r *RideRequestRepository) Update(ctx context.Context, req *domain.RideRequest) error {
	query := `
		UPDATE ride_requests
		SET vehicle_service_id = $1, pickup_location_id = $2, dropoff_location_id = $3,
			ride_date = $4, pickup_time = $5, status = $6
		WHERE id = $7
	`

	result, err := r.q.ExecContext(ctx, query,
		req.VehicleServiceID,
		req.PickupLocationID,
		req.DropoffLocationID,
		req.RideDate,
		req.PickupTime,
		req.Status,
		req.ID,
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

// ListPendingByService returns PENDING requests for a vehicle service.
func (r *RideRequestRepository) ListPendingByService(ctx context.Context, vehicleServiceID string) ([]*domain.RideRequest, error) {
	query := `
		SELECT ` + rideRequestColumns + `
		FROM ride_requests
		WHERE vehicle_service_id = $1 AND status = $2
		ORDER BY created_at, id
	`

	rows, err := r.q.QueryContext(ctx, query, vehicleServiceID, domain.RideRequestStatusPending)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var requests []*domain.RideRequest
	for rows.Next() {
		req, err := scanRideRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

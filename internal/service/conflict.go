package service

import (
	"context"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// A booked pickup at P blocks new pickups in [P-ConflictLeadTime, P+ConflictTrailTime].
const (
	ConflictLeadTime  = 15 * time.Minute
	ConflictTrailTime = 30 * time.Minute
)

// ConflictChecker detects driver double-booking.
type ConflictChecker struct {
	rides repository.RideRepository
}

// NewConflictChecker creates a ConflictChecker reading from rides.
func NewConflictChecker(rides repository.RideRepository) *ConflictChecker {
	return &ConflictChecker{rides: rides}
}

// HasConflict reports whether the driver already has a SCHEDULED or ONGOING
// ride on rideDate whose exclusion window contains pickup. Both ends of the
// window are inclusive and the window never crosses midnight.
func (c *ConflictChecker) HasConflict(ctx context.Context, driverID string, rideDate time.Time, pickup domain.TimeOfDay) (bool, error) {
	if driverID == "" {
		return false, ErrInvalidID
	}
	if !pickup.Valid() {
		return false, ErrInvalidPickupTime
	}

	from, to := ConflictSearchRange(pickup)
	rides, err := c.rides.FindActiveInWindow(ctx, driverID, domain.DateOf(rideDate), from, to)
	if err != nil {
		return false, classify(err, nil)
	}
	return len(rides) > 0, nil
}

// ConflictSearchRange returns the range of booked pickup times whose
// exclusion window contains pickup.
func ConflictSearchRange(pickup domain.TimeOfDay) (from, to domain.TimeOfDay) {
	return pickup.Add(-ConflictTrailTime), pickup.Add(ConflictLeadTime)
}

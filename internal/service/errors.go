package service

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/repository"
)

// Error kinds. Every error returned by this package wraps exactly one of them,
// so callers branch with errors.Is.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a booking would overlap another one or lost a
	// race against a concurrent writer.
	ErrConflict = errors.New("conflict")

	// ErrInvalidState is returned when an operation is not allowed in the
	// entity's current state.
	ErrInvalidState = errors.New("invalid state")

	// ErrUpstream is returned when persistence, the distance lookup or the lock
	// store failed, or the operation ran out of time.
	ErrUpstream = errors.New("upstream failure")

	// ErrInvalidInput is returned when caller input fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrRideNotFound           = fmt.Errorf("ride %w", ErrNotFound)
	ErrRideRequestNotFound    = fmt.Errorf("ride request %w", ErrNotFound)
	ErrDriverNotFound         = fmt.Errorf("driver %w", ErrNotFound)
	ErrLocationNotFound       = fmt.Errorf("location %w", ErrNotFound)
	ErrBrandModelNotFound     = fmt.Errorf("brand model %w", ErrNotFound)
	ErrVehicleServiceNotFound = fmt.Errorf("vehicle service %w", ErrNotFound)
	ErrNoCommissionSlab       = fmt.Errorf("commission slab for distance %w", ErrNotFound)

	ErrScheduleConflict = fmt.Errorf("driver has another ride in the pickup window: %w", ErrConflict)
	ErrConcurrentUpdate = fmt.Errorf("concurrent update: %w", ErrConflict)

	ErrRequestNotPending    = fmt.Errorf("ride request is not pending: %w", ErrInvalidState)
	ErrRequestAlreadyServed = fmt.Errorf("ride request already has a ride: %w", ErrInvalidState)
	ErrInvalidTransition    = fmt.Errorf("ride status transition not allowed: %w", ErrInvalidState)
	ErrDriverNotVerified    = fmt.Errorf("driver is not verified: %w", ErrInvalidState)
	ErrDriverHasNoVehicle   = fmt.Errorf("driver has no vehicle: %w", ErrInvalidState)
	ErrDriverHasVehicle     = fmt.Errorf("driver already has a vehicle: %w", ErrInvalidState)
	ErrDriverOffDuty        = fmt.Errorf("driver is off duty: %w", ErrInvalidState)
	ErrDriverHasActiveRide  = fmt.Errorf("driver has a scheduled or ongoing ride: %w", ErrInvalidState)
	ErrVehicleClassMismatch = fmt.Errorf("vehicle class does not match the request: %w", ErrInvalidState)
	ErrMissingDocuments     = fmt.Errorf("driver has not uploaded licence details: %w", ErrInvalidState)
	ErrLocationInactive     = fmt.Errorf("location is not active: %w", ErrInvalidState)
	ErrRideNotCompleted     = fmt.Errorf("ride is not completed: %w", ErrInvalidState)
	ErrFeedbackAlreadyGiven = fmt.Errorf("feedback already given for this ride: %w", ErrInvalidState)

	ErrInvalidID           = fmt.Errorf("id must not be empty: %w", ErrInvalidInput)
	ErrInvalidDistance     = fmt.Errorf("distance must not be negative: %w", ErrInvalidInput)
	ErrNegativeAmount      = fmt.Errorf("amount must not be negative: %w", ErrInvalidInput)
	ErrInvalidPickupTime   = fmt.Errorf("pickup time out of range: %w", ErrInvalidInput)
	ErrPastRideDate        = fmt.Errorf("ride date is in the past: %w", ErrInvalidInput)
	ErrSameLocation        = fmt.Errorf("pickup and dropoff must differ: %w", ErrInvalidInput)
	ErrInvalidVerification = fmt.Errorf("verification status must be VERIFIED or REJECTED: %w", ErrInvalidInput)
	ErrVehicleTooOld       = fmt.Errorf("vehicle is older than the model allows: %w", ErrInvalidInput)
	ErrInvalidDateRange    = fmt.Errorf("date range end is before its start: %w", ErrInvalidInput)
	ErrInvalidRating       = fmt.Errorf("rating must be between 1 and 5: %w", ErrInvalidInput)
	ErrCommentTooLong      = fmt.Errorf("comment is too long: %w", ErrInvalidInput)
	ErrNotRideParty        = fmt.Errorf("caller is neither customer nor driver of the ride: %w", ErrInvalidInput)

	ErrLockTimeout = fmt.Errorf("driver lock not acquired: %w", ErrUpstream)
)

// errorKinds lists the kinds a service error may already carry.
var errorKinds = []error{ErrNotFound, ErrConflict, ErrInvalidState, ErrUpstream, ErrInvalidInput}

// classify maps a repository or collaborator failure to an error kind.
// notFound is returned for repository.ErrNotFound.
func classify(err error, notFound error) error {
	if err == nil {
		return nil
	}

	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return err
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound) && notFound != nil:
		return notFound
	case errors.Is(err, repository.ErrSerialization):
		return fmt.Errorf("%w: %w", ErrConcurrentUpdate, err)
	case errors.Is(err, repository.ErrDuplicate):
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	default:
		return upstream(err)
	}
}

// upstream wraps err as an upstream failure, keeping the cause.
func upstream(err error) error {
	if err == nil || errors.Is(err, ErrUpstream) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: operation aborted: %w", ErrUpstream, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstream, err)
}

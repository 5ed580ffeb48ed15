package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// RideLifecycle moves ride requests and rides through their states.
//
// Every operation runs as one serializable transaction while holding the
// driver's lock, so two operations for one driver never interleave. In
// particular two accepts cannot both pass the conflict check before either
// inserts its ride.
type RideLifecycle struct {
	uow        repository.UnitOfWork
	locker     DriverLocker
	fares      *FareCalculator
	settlement *SettlementEngine
	policy     *CancellationPolicy
	notifier   *NotificationService
	timeout    time.Duration
	log        logrus.FieldLogger
}

// NewRideLifecycle creates a new RideLifecycle.
func NewRideLifecycle(
	uow repository.UnitOfWork,
	locker DriverLocker,
	fares *FareCalculator,
	settlement *SettlementEngine,
	policy *CancellationPolicy,
	notifier *NotificationService,
	timeout time.Duration,
	log logrus.FieldLogger,
) *RideLifecycle {
	return &RideLifecycle{
		uow:        uow,
		locker:     locker,
		fares:      fares,
		settlement: settlement,
		policy:     policy,
		notifier:   notifier,
		timeout:    timeout,
		log:        log,
	}
}

// AcceptRequest assigns a PENDING request to the driver. It creates a
// SCHEDULED ride carrying the request's customer, locations, date and pickup
// time, and marks the request ACCEPTED.
func (l *RideLifecycle) AcceptRequest(ctx context.Context, driverID, requestID string) (domain.Ride, error) {
	if driverID == "" || requestID == "" {
		return domain.Ride{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	unlock, err := l.locker.LockDriver(ctx, driverID)
	if err != nil {
		return domain.Ride{}, err
	}
	defer unlock()

	var ride domain.Ride
	err = l.uow.WithinTx(ctx, func(tx repository.Store) error {
		req, err := tx.RideRequests().GetForUpdate(ctx, requestID)
		if err != nil {
			return classify(err, ErrRideRequestNotFound)
		}
		if !req.IsPending() {
			return ErrRequestNotPending
		}

		driver, err := tx.Drivers().GetByID(ctx, driverID)
		if err != nil {
			return classify(err, ErrDriverNotFound)
		}
		if err := checkEligible(ctx, tx.Catalog(), driver, req); err != nil {
			return err
		}

		conflict, err := NewConflictChecker(tx.Rides()).HasConflict(ctx, driverID, req.RideDate, req.PickupTime)
		if err != nil {
			return err
		}
		if conflict {
			return ErrScheduleConflict
		}

		ride = domain.NewRideFromRequest(uuid.NewString(), *req, driverID, time.Now().UTC())
		if err := tx.Rides().Create(ctx, &ride); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrRequestAlreadyServed
			}
			return classify(err, nil)
		}

		accepted := req.WithStatus(domain.RideRequestStatusAccepted)
		return classify(tx.RideRequests().Update(ctx, &accepted), ErrRideRequestNotFound)
	})
	if err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{
			"driver_id":  driverID,
			"request_id": requestID,
		}).Info("accept ride request rejected")
		return domain.Ride{}, classify(err, nil)
	}

	l.log.WithFields(logrus.Fields{
		"ride_id":    ride.ID,
		"driver_id":  driverID,
		"request_id": requestID,
	}).Info("ride request accepted")
	l.notifier.NotifyRideAccepted(ctx, ride)

	return ride, nil
}

// Start moves a SCHEDULED ride to ONGOING.
func (l *RideLifecycle) Start(ctx context.Context, rideID string) (domain.Ride, error) {
	ride, err := l.transition(ctx, rideID, domain.RideStatusOngoing, func(_ repository.Store, r domain.Ride, now time.Time) (domain.Ride, error) {
		return r.WithStatus(domain.RideStatusOngoing, now), nil
	})
	if err != nil {
		return domain.Ride{}, err
	}

	l.notifier.NotifyRideStarted(ctx, ride)
	return ride, nil
}

// Cancel cancels a SCHEDULED or ONGOING ride, settles it from details and puts
// the driver back on duty.
func (l *RideLifecycle) Cancel(ctx context.Context, rideID string, details domain.CancellationDetails) (domain.Ride, error) {
	return l.cancel(ctx, rideID, func(domain.Ride) domain.CancellationDetails { return details })
}

// CancelAs cancels a ride on behalf of a party, with the amounts the
// cancellation policy sets for that party.
func (l *RideLifecycle) CancelAs(ctx context.Context, rideID string, by domain.Role) (domain.Ride, error) {
	return l.cancel(ctx, rideID, func(r domain.Ride) domain.CancellationDetails {
		return l.policy.DetailsFor(r, by)
	})
}

func (l *RideLifecycle) cancel(ctx context.Context, rideID string, detailsFor func(domain.Ride) domain.CancellationDetails) (domain.Ride, error) {
	ride, err := l.transition(ctx, rideID, domain.RideStatusCancelled, func(tx repository.Store, r domain.Ride, now time.Time) (domain.Ride, error) {
		settlement, err := l.settlement.ComputeCancellation(detailsFor(r))
		if err != nil {
			return domain.Ride{}, err
		}
		if err := tx.Drivers().UpdateAvailability(ctx, r.DriverID, true); err != nil {
			return domain.Ride{}, classify(err, ErrDriverNotFound)
		}
		return r.WithSettlement(settlement, now), nil
	})
	if err != nil {
		return domain.Ride{}, err
	}

	l.notifier.NotifyRideCancelled(ctx, ride)
	return ride, nil
}

// Complete finishes an ONGOING ride that covered totalKm and prices it with
// the ride's vehicle service tariff and commission slab.
func (l *RideLifecycle) Complete(ctx context.Context, rideID string, totalKm decimal.Decimal) (domain.Ride, error) {
	if totalKm.IsNegative() {
		return domain.Ride{}, ErrInvalidDistance
	}

	ride, err := l.transition(ctx, rideID, domain.RideStatusCompleted, func(tx repository.Store, r domain.Ride, now time.Time) (domain.Ride, error) {
		svc, err := tx.Catalog().GetVehicleService(ctx, r.VehicleServiceID)
		if err != nil {
			return domain.Ride{}, classify(err, ErrVehicleServiceNotFound)
		}

		fare, err := l.fares.Fare(ctx, *svc, totalKm)
		if err != nil {
			return domain.Ride{}, err
		}
		return r.WithFare(fare, domain.NewTimeOfDay(now.Hour(), now.Minute()), now), nil
	})
	if err != nil {
		return domain.Ride{}, err
	}

	l.notifier.NotifyRideCompleted(ctx, ride)
	return ride, nil
}

// transition takes the lock of the ride's driver, reloads the ride with a row
// lock, checks that it may move to target, and stores the snapshot produced
// by apply.
func (l *RideLifecycle) transition(
	ctx context.Context,
	rideID string,
	target domain.RideStatus,
	apply func(tx repository.Store, r domain.Ride, now time.Time) (domain.Ride, error),
) (domain.Ride, error) {
	if rideID == "" {
		return domain.Ride{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	// The driver of a ride never changes, so the lock key can be read
	// outside the transaction.
	owner, err := l.uow.Rides().GetByID(ctx, rideID)
	if err != nil {
		return domain.Ride{}, classify(err, ErrRideNotFound)
	}

	unlock, err := l.locker.LockDriver(ctx, owner.DriverID)
	if err != nil {
		return domain.Ride{}, err
	}
	defer unlock()

	var updated domain.Ride
	err = l.uow.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Rides().GetForUpdate(ctx, rideID)
		if err != nil {
			return classify(err, ErrRideNotFound)
		}
		if !domain.CanTransition(current.Status, target) {
			return ErrInvalidTransition
		}

		next, err := apply(tx, *current, time.Now().UTC())
		if err != nil {
			return err
		}
		if err := tx.Rides().Update(ctx, &next); err != nil {
			return classify(err, ErrRideNotFound)
		}

		updated = next
		return nil
	})
	if err != nil {
		return domain.Ride{}, classify(err, nil)
	}

	l.log.WithFields(logrus.Fields{
		"ride_id":   updated.ID,
		"driver_id": updated.DriverID,
		"status":    updated.Status,
	}).Info("ride status changed")

	return updated, nil
}

// checkEligible verifies the driver can serve the request.
func checkEligible(ctx context.Context, catalog repository.CatalogRepository, driver *domain.Driver, req *domain.RideRequest) error {
	if driver.VerificationStatus != domain.VerificationStatusVerified {
		return ErrDriverNotVerified
	}
	if !driver.IsAvailable {
		return ErrDriverOffDuty
	}
	if driver.Vehicle == nil {
		return ErrDriverHasNoVehicle
	}

	serviceID, err := vehicleServiceOf(ctx, catalog, driver.Vehicle)
	if err != nil {
		return err
	}
	if serviceID != req.VehicleServiceID {
		return ErrVehicleClassMismatch
	}
	return nil
}

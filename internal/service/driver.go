package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// DriverService handles driver onboarding and duty state. Every write to a
// driver's duty flag happens while holding that driver's lock.
type DriverService struct {
	uow     repository.UnitOfWork
	locker  DriverLocker
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewDriverService creates a new DriverService.
func NewDriverService(uow repository.UnitOfWork, locker DriverLocker, timeout time.Duration, log logrus.FieldLogger) *DriverService {
	return &DriverService{
		uow:     uow,
		locker:  locker,
		timeout: timeout,
		log:     log,
	}
}

// AttachVehicleRequest contains the parameters for registering a vehicle.
type AttachVehicleRequest struct {
	BrandModelID       string
	RegistrationNumber string
	Year               int
}

// Driver returns the driver with their vehicle.
func (s *DriverService) Driver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	driver, err := s.uow.Drivers().GetByID(ctx, driverID)
	if err != nil {
		return nil, classify(err, ErrDriverNotFound)
	}
	return driver, nil
}

// Available reports whether the driver can be matched: their duty flag is set
// and they have no SCHEDULED or ONGOING ride.
func (s *DriverService) Available(ctx context.Context, driverID string) (bool, error) {
	driver, err := s.Driver(ctx, driverID)
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return isAvailable(ctx, s.uow.Rides(), driver)
}

// Verify records the outcome of a licence review. VERIFIED puts the driver on
// duty, REJECTED takes them off.
func (s *DriverService) Verify(ctx context.Context, driverID string, status domain.VerificationStatus, comment string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidID
	}
	if status != domain.VerificationStatusVerified && status != domain.VerificationStatusRejected {
		return nil, ErrInvalidVerification
	}

	var updated *domain.Driver
	err := s.withDriverLock(ctx, driverID, func(ctx context.Context) error {
		drivers := s.uow.Drivers()

		driver, err := drivers.GetByID(ctx, driverID)
		if err != nil {
			return classify(err, ErrDriverNotFound)
		}
		if !driver.HasDocuments() {
			return ErrMissingDocuments
		}

		available := status == domain.VerificationStatusVerified
		comment = strings.TrimSpace(comment)
		if err := drivers.UpdateVerification(ctx, driverID, status, comment, available); err != nil {
			return classify(err, ErrDriverNotFound)
		}

		driver.VerificationStatus = status
		driver.VerificationComment = comment
		driver.IsAvailable = available
		updated = driver
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"driver_id": driverID, "status": status}).Info("driver verification updated")
	return updated, nil
}

// AttachVehicle registers the driver's single vehicle and puts them on duty.
func (s *DriverService) AttachVehicle(ctx context.Context, driverID string, req AttachVehicleRequest) (*domain.Vehicle, error) {
	if driverID == "" || req.BrandModelID == "" {
		return nil, ErrInvalidID
	}
	req.RegistrationNumber = strings.ToUpper(strings.TrimSpace(req.RegistrationNumber))
	if req.RegistrationNumber == "" {
		return nil, fmt.Errorf("registration number is required: %w", ErrInvalidInput)
	}

	var vehicle domain.Vehicle
	err := s.withDriverLock(ctx, driverID, func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(tx repository.Store) error {
			driver, err := tx.Drivers().GetByID(ctx, driverID)
			if err != nil {
				return classify(err, ErrDriverNotFound)
			}
			if driver.VerificationStatus != domain.VerificationStatusVerified {
				return ErrDriverNotVerified
			}
			if driver.Vehicle != nil {
				return ErrDriverHasVehicle
			}

			bm, err := tx.Catalog().GetBrandModel(ctx, req.BrandModelID)
			if err != nil {
				return classify(err, ErrBrandModelNotFound)
			}
			if req.Year < bm.MinYear {
				return ErrVehicleTooOld
			}
			if req.Year > time.Now().Year()+1 {
				return fmt.Errorf("vehicle year %d is in the future: %w", req.Year, ErrInvalidInput)
			}

			vehicle = domain.Vehicle{
				ID:                 uuid.NewString(),
				DriverID:           driverID,
				BrandModelID:       bm.ID,
				RegistrationNumber: req.RegistrationNumber,
				Year:               req.Year,
			}
			if err := tx.Drivers().AddVehicle(ctx, &vehicle); err != nil {
				return classify(err, nil)
			}
			return classify(tx.Drivers().UpdateAvailability(ctx, driverID, true), ErrDriverNotFound)
		})
	})
	if err != nil {
		return nil, classify(err, nil)
	}

	s.log.WithFields(logrus.Fields{"driver_id": driverID, "vehicle_id": vehicle.ID}).Info("vehicle attached")
	return &vehicle, nil
}

// DetachVehicle removes the driver's vehicle. A driver with a SCHEDULED or
// ONGOING ride keeps their vehicle.
func (s *DriverService) DetachVehicle(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidID
	}

	err := s.withDriverLock(ctx, driverID, func(ctx context.Context) error {
		return s.uow.WithinTx(ctx, func(tx repository.Store) error {
			driver, err := tx.Drivers().GetByID(ctx, driverID)
			if err != nil {
				return classify(err, ErrDriverNotFound)
			}
			if driver.Vehicle == nil {
				return ErrDriverHasNoVehicle
			}

			active, err := tx.Rides().CountActiveByDriver(ctx, driverID)
			if err != nil {
				return classify(err, nil)
			}
			if active > 0 {
				return ErrDriverHasActiveRide
			}

			if err := tx.Drivers().DeleteVehicle(ctx, driverID); err != nil {
				return classify(err, ErrDriverHasNoVehicle)
			}
			return classify(tx.Drivers().UpdateAvailability(ctx, driverID, false), ErrDriverNotFound)
		})
	})
	if err != nil {
		return classify(err, nil)
	}

	s.log.WithField("driver_id", driverID).Info("vehicle detached")
	return nil
}

// SetDuty sets the driver's duty flag. Going on duty requires a verified
// driver with a vehicle.
func (s *DriverService) SetDuty(ctx context.Context, driverID string, onDuty bool) error {
	if driverID == "" {
		return ErrInvalidID
	}

	return s.withDriverLock(ctx, driverID, func(ctx context.Context) error {
		drivers := s.uow.Drivers()

		driver, err := drivers.GetByID(ctx, driverID)
		if err != nil {
			return classify(err, ErrDriverNotFound)
		}
		if onDuty {
			if driver.VerificationStatus != domain.VerificationStatusVerified {
				return ErrDriverNotVerified
			}
			if driver.Vehicle == nil {
				return ErrDriverHasNoVehicle
			}
		}
		return classify(drivers.UpdateAvailability(ctx, driverID, onDuty), ErrDriverNotFound)
	})
}

// withDriverLock runs fn under the operation timeout while holding the driver lock.
func (s *DriverService) withDriverLock(ctx context.Context, driverID string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	unlock, err := s.locker.LockDriver(ctx, driverID)
	if err != nil {
		return err
	}
	defer unlock()

	return fn(ctx)
}

// isAvailable derives matchability from the duty flag and active rides.
func isAvailable(ctx context.Context, rides repository.RideRepository, driver *domain.Driver) (bool, error) {
	if !driver.IsAvailable {
		return false, nil
	}

	active, err := rides.CountActiveByDriver(ctx, driver.ID)
	if err != nil {
		return false, classify(err, nil)
	}
	return active == 0, nil
}

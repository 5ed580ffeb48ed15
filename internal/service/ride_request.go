package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// RideRequestService handles the customer side of ride requests.
type RideRequestService struct {
	uow      repository.UnitOfWork
	distance *DistanceService
	fares    *FareCalculator
	notifier *NotificationService
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewRideRequestService creates a new RideRequestService.
func NewRideRequestService(
	uow repository.UnitOfWork,
	distance *DistanceService,
	fares *FareCalculator,
	notifier *NotificationService,
	timeout time.Duration,
	log logrus.FieldLogger,
) *RideRequestService {
	return &RideRequestService{
		uow:      uow,
		distance: distance,
		fares:    fares,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

// CreateRideRequest contains the parameters for requesting a ride.
type CreateRideRequest struct {
	CustomerID        string
	VehicleServiceID  string
	PickupLocationID  string
	DropoffLocationID string
	RideDate          time.Time
	PickupTime        domain.TimeOfDay
}

// Create stores a new PENDING ride request.
func (s *RideRequestService) Create(ctx context.Context, in CreateRideRequest) (domain.RideRequest, error) {
	if err := validateCreateRequest(in, time.Now()); err != nil {
		return domain.RideRequest{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	catalog := s.uow.Catalog()
	if _, err := activeLocation(ctx, catalog, in.PickupLocationID); err != nil {
		return domain.RideRequest{}, err
	}
	if _, err := activeLocation(ctx, catalog, in.DropoffLocationID); err != nil {
		return domain.RideRequest{}, err
	}
	if _, err := catalog.GetVehicleService(ctx, in.VehicleServiceID); err != nil {
		return domain.RideRequest{}, classify(err, ErrVehicleServiceNotFound)
	}

	req := domain.RideRequest{
		ID:                uuid.NewString(),
		CustomerID:        in.CustomerID,
		VehicleServiceID:  in.VehicleServiceID,
		PickupLocationID:  in.PickupLocationID,
		DropoffLocationID: in.DropoffLocationID,
		RideDate:          domain.DateOf(in.RideDate),
		PickupTime:        in.PickupTime,
		Status:            domain.RideRequestStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.uow.RideRequests().Create(ctx, &req); err != nil {
		return domain.RideRequest{}, classify(err, nil)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":  req.ID,
		"customer_id": req.CustomerID,
	}).Info("ride request created")
	s.notifier.NotifyRequestCreated(ctx, req)

	return req, nil
}

// Get returns a ride request by ID.
func (s *RideRequestService) Get(ctx context.Context, requestID string) (domain.RideRequest, error) {
	if requestID == "" {
		return domain.RideRequest{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := s.uow.RideRequests().GetByID(ctx, requestID)
	if err != nil {
		return domain.RideRequest{}, classify(err, ErrRideRequestNotFound)
	}
	return *req, nil
}

// Cancel withdraws a PENDING request on behalf of the customer who made it.
func (s *RideRequestService) Cancel(ctx context.Context, requestID, customerID string) (domain.RideRequest, error) {
	return s.close(ctx, requestID, customerID, domain.RideRequestStatusCancelled)
}

// Expire closes a PENDING request nobody accepted.
func (s *RideRequestService) Expire(ctx context.Context, requestID string) (domain.RideRequest, error) {
	return s.close(ctx, requestID, "", domain.RideRequestStatusExpired)
}

// Quote prices a trip between two locations on a vehicle service.
func (s *RideRequestService) Quote(ctx context.Context, pickupID, dropoffID, vehicleServiceID string) (domain.FareBreakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	km, err := s.distance.Kilometres(ctx, pickupID, dropoffID)
	if err != nil {
		return domain.FareBreakdown{}, err
	}
	return s.fares.Quote(ctx, vehicleServiceID, km)
}

// close moves a PENDING request to status. A non-empty customerID must own
// the request.
func (s *RideRequestService) close(ctx context.Context, requestID, customerID string, status domain.RideRequestStatus) (domain.RideRequest, error) {
	if requestID == "" {
		return domain.RideRequest{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var closed domain.RideRequest
	err := s.uow.WithinTx(ctx, func(tx repository.Store) error {
		req, err := tx.RideRequests().GetForUpdate(ctx, requestID)
		if err != nil {
			return classify(err, ErrRideRequestNotFound)
		}
		if customerID != "" && req.CustomerID != customerID {
			return ErrRideRequestNotFound
		}
		if !req.IsPending() {
			return ErrRequestNotPending
		}

		closed = req.WithStatus(status)
		return classify(tx.RideRequests().Update(ctx, &closed), ErrRideRequestNotFound)
	})
	if err != nil {
		return domain.RideRequest{}, classify(err, nil)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": closed.ID,
		"status":     closed.Status,
	}).Info("ride request closed")
	s.notifier.NotifyRequestClosed(ctx, closed)

	return closed, nil
}

func validateCreateRequest(in CreateRideRequest, now time.Time) error {
	if in.CustomerID == "" || in.VehicleServiceID == "" || in.PickupLocationID == "" || in.DropoffLocationID == "" {
		return ErrInvalidID
	}
	if in.PickupLocationID == in.DropoffLocationID {
		return ErrSameLocation
	}
	if !in.PickupTime.Valid() {
		return ErrInvalidPickupTime
	}
	if domain.DateOf(in.RideDate).Before(domain.DateOf(now)) {
		return ErrPastRideDate
	}
	return nil
}

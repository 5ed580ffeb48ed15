package service

import (
	"context"
	"sort"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// RideMatcher lists the pending requests a driver may accept.
type RideMatcher struct {
	store   repository.Store
	timeout time.Duration
}

// NewRideMatcher creates a new RideMatcher.
func NewRideMatcher(store repository.Store, timeout time.Duration) *RideMatcher {
	return &RideMatcher{store: store, timeout: timeout}
}

// PendingRequestsFor returns PENDING requests for the vehicle service the
// driver's vehicle belongs to, oldest first with ties broken by ID. A driver
// that is unverified, has no vehicle or is not available gets an empty list.
func (m *RideMatcher) PendingRequestsFor(ctx context.Context, driverID string) ([]domain.RideRequest, error) {
	if driverID == "" {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	driver, err := m.store.Drivers().GetByID(ctx, driverID)
	if err != nil {
		return nil, classify(err, ErrDriverNotFound)
	}
	if driver.VerificationStatus != domain.VerificationStatusVerified || driver.Vehicle == nil {
		return []domain.RideRequest{}, nil
	}

	available, err := isAvailable(ctx, m.store.Rides(), driver)
	if err != nil {
		return nil, err
	}
	if !available {
		return []domain.RideRequest{}, nil
	}

	serviceID, err := vehicleServiceOf(ctx, m.store.Catalog(), driver.Vehicle)
	if err != nil {
		return nil, err
	}

	pending, err := m.store.RideRequests().ListPendingByService(ctx, serviceID)
	if err != nil {
		return nil, classify(err, nil)
	}

	requests := make([]domain.RideRequest, 0, len(pending))
	for _, req := range pending {
		if req.IsPending() {
			requests = append(requests, *req)
		}
	}
	sort.SliceStable(requests, func(i, j int) bool {
		if !requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].CreatedAt.Before(requests[j].CreatedAt)
		}
		return requests[i].ID < requests[j].ID
	})

	return requests, nil
}

// vehicleServiceOf follows vehicle -> brand model -> vehicle service.
func vehicleServiceOf(ctx context.Context, catalog repository.CatalogRepository, vehicle *domain.Vehicle) (string, error) {
	bm, err := catalog.GetBrandModel(ctx, vehicle.BrandModelID)
	if err != nil {
		return "", classify(err, ErrBrandModelNotFound)
	}
	return bm.VehicleServiceID, nil
}

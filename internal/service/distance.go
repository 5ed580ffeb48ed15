package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// DistanceProvider measures the road distance between two locations.
type DistanceProvider interface {
	DistanceMeters(ctx context.Context, origin, destination domain.Location) (int64, error)
}

// DistanceService resolves locations and asks the provider for the distance
// between them, bounded by its own timeout.
type DistanceService struct {
	provider DistanceProvider
	catalog  repository.CatalogRepository
	timeout  time.Duration
}

// NewDistanceService creates a new DistanceService.
func NewDistanceService(provider DistanceProvider, catalog repository.CatalogRepository, timeout time.Duration) *DistanceService {
	return &DistanceService{provider: provider, catalog: catalog, timeout: timeout}
}

// Kilometres returns the distance between two active locations in km,
// rounded to two decimals.
func (s *DistanceService) Kilometres(ctx context.Context, pickupID, dropoffID string) (decimal.Decimal, error) {
	if pickupID == "" || dropoffID == "" {
		return decimal.Zero, ErrInvalidID
	}
	if pickupID == dropoffID {
		return decimal.Zero, ErrSameLocation
	}

	pickup, err := activeLocation(ctx, s.catalog, pickupID)
	if err != nil {
		return decimal.Zero, err
	}
	dropoff, err := activeLocation(ctx, s.catalog, dropoffID)
	if err != nil {
		return decimal.Zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	meters, err := s.provider.DistanceMeters(ctx, *pickup, *dropoff)
	if err != nil {
		return decimal.Zero, upstream(fmt.Errorf("distance lookup: %w", err))
	}
	if meters < 0 {
		return decimal.Zero, upstream(errors.New("distance lookup returned a negative distance"))
	}

	return RoundKm(meters), nil
}

func activeLocation(ctx context.Context, catalog repository.CatalogRepository, id string) (*domain.Location, error) {
	loc, err := catalog.GetLocation(ctx, id)
	if err != nil {
		return nil, classify(err, ErrLocationNotFound)
	}
	if !loc.IsActive {
		return nil, ErrLocationInactive
	}
	return loc, nil
}

package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// CatalogService maintains the reference data requests and fares read.
type CatalogService struct {
	catalog repository.CatalogRepository
	fares   *FareCalculator
	timeout time.Duration
	log     logrus.FieldLogger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog repository.CatalogRepository, fares *FareCalculator, timeout time.Duration, log logrus.FieldLogger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		fares:   fares,
		timeout: timeout,
		log:     log,
	}
}

// SetLocationActive opens or closes a location. Closed locations are
// rejected as pickup or dropoff of new requests and quotes; existing rides
// keep them.
func (s *CatalogService) SetLocationActive(ctx context.Context, locationID string, active bool) (domain.Location, error) {
	if locationID == "" {
		return domain.Location{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.catalog.SetLocationActive(ctx, locationID, active); err != nil {
		return domain.Location{}, classify(err, ErrLocationNotFound)
	}
	loc, err := s.catalog.GetLocation(ctx, locationID)
	if err != nil {
		return domain.Location{}, classify(err, ErrLocationNotFound)
	}

	s.log.WithFields(logrus.Fields{
		"location_id": loc.ID,
		"active":      loc.IsActive,
	}).Info("location availability changed")

	return *loc, nil
}

// RefreshCommissionSlabs makes fares pick up edited slabs immediately
// instead of after the cache expires.
func (s *CatalogService) RefreshCommissionSlabs(ctx context.Context) ([]domain.CommissionSlab, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slabs, err := s.fares.RefreshSlabs(ctx)
	if err != nil {
		return nil, err
	}

	s.log.WithField("slabs", len(slabs)).Info("commission slabs refreshed")
	return slabs, nil
}

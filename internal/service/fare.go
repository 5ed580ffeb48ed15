package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/repository"
)

// RoundKm converts a metre distance into kilometres rounded to two decimals.
func RoundKm(meters int64) decimal.Decimal {
	return decimal.New(meters, -3).Round(2)
}

// FareCalculator prices trips and looks up commission slabs.
type FareCalculator struct {
	slabs      repository.CommissionSlabRepository
	cache      redis.SlabCacheInterface
	catalog    repository.CatalogRepository
	settlement *SettlementEngine
	log        logrus.FieldLogger
}

// NewFareCalculator creates a new FareCalculator. cache may be nil.
func NewFareCalculator(
	slabs repository.CommissionSlabRepository,
	cache redis.SlabCacheInterface,
	catalog repository.CatalogRepository,
	settlement *SettlementEngine,
	log logrus.FieldLogger,
) *FareCalculator {
	return &FareCalculator{
		slabs:      slabs,
		cache:      cache,
		catalog:    catalog,
		settlement: settlement,
		log:        log,
	}
}

// CommissionFor returns the commission percentage of the slab covering km.
// km is rounded to two decimals before the lookup. When km sits on a boundary
// shared by two slabs, the slab with the lower FromKm wins.
func (f *FareCalculator) CommissionFor(ctx context.Context, km decimal.Decimal) (decimal.Decimal, error) {
	if km.IsNegative() {
		return decimal.Zero, ErrInvalidDistance
	}

	slabs, err := f.loadSlabs(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	slab, ok := selectSlab(slabs, km.Round(2))
	if !ok {
		return decimal.Zero, ErrNoCommissionSlab
	}
	return slab.CommissionPercentage, nil
}

// Quote prices a trip of km kilometres on the given vehicle service.
func (f *FareCalculator) Quote(ctx context.Context, vehicleServiceID string, km decimal.Decimal) (domain.FareBreakdown, error) {
	if vehicleServiceID == "" {
		return domain.FareBreakdown{}, ErrInvalidID
	}

	svc, err := f.catalog.GetVehicleService(ctx, vehicleServiceID)
	if err != nil {
		return domain.FareBreakdown{}, classify(err, ErrVehicleServiceNotFound)
	}
	return f.Fare(ctx, *svc, km)
}

// Fare prices a trip of km kilometres with the tariff of svc and splits the
// cost between driver and platform.
func (f *FareCalculator) Fare(ctx context.Context, svc domain.VehicleService, km decimal.Decimal) (domain.FareBreakdown, error) {
	km = km.Round(2)

	commission, err := f.CommissionFor(ctx, km)
	if err != nil {
		return domain.FareBreakdown{}, err
	}

	totalCost := svc.BaseFare.Add(svc.PerKmRate.Mul(km)).Round(2)
	driverEarning, systemEarning := f.settlement.ComputeCompletion(totalCost, commission)

	return domain.FareBreakdown{
		TotalKm:              km,
		TotalCost:            totalCost,
		CommissionPercentage: commission,
		DriverEarning:        driverEarning,
		SystemEarning:        systemEarning,
	}, nil
}

// InvalidateSlabs drops the cached slab table.
func (f *FareCalculator) InvalidateSlabs(ctx context.Context) {
	if f.cache == nil {
		return
	}
	if err := f.cache.InvalidateCommissionSlabs(ctx); err != nil {
		f.log.WithError(err).Warn("invalidate commission slab cache")
	}
}

// RefreshSlabs drops the cached slab table and reloads it from the store,
// returning the slabs now in effect.
func (f *FareCalculator) RefreshSlabs(ctx context.Context) ([]domain.CommissionSlab, error) {
	f.InvalidateSlabs(ctx)
	return f.loadSlabs(ctx)
}

func (f *FareCalculator) loadSlabs(ctx context.Context) ([]domain.CommissionSlab, error) {
	if f.cache != nil {
		cached, err := f.cache.GetCommissionSlabs(ctx)
		if err != nil {
			f.log.WithError(err).Warn("read commission slab cache")
		} else if cached != nil {
			return cached, nil
		}
	}

	slabs, err := f.slabs.List(ctx)
	if err != nil {
		return nil, classify(err, nil)
	}

	if f.cache != nil && len(slabs) > 0 {
		if err := f.cache.SetCommissionSlabs(ctx, slabs); err != nil {
			f.log.WithError(err).Warn("write commission slab cache")
		}
	}
	return slabs, nil
}

// selectSlab returns the covering slab with the lowest FromKm.
func selectSlab(slabs []domain.CommissionSlab, km decimal.Decimal) (domain.CommissionSlab, bool) {
	var best domain.CommissionSlab
	found := false
	for _, s := range slabs {
		if !s.Covers(km) {
			continue
		}
		if !found || s.FromKm.LessThan(best.FromKm) || (s.FromKm.Equal(best.FromKm) && s.ID < best.ID) {
			best = s
			found = true
		}
	}
	return best, found
}

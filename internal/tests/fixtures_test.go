package tests

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/service"
)

const (
	sedanService = "svc-sedan"
	autoService  = "svc-auto"
	sedanModel   = "bm-sedan"
	autoModel    = "bm-auto"

	locationA      = "loc-a"
	locationB      = "loc-b"
	locationClosed = "loc-closed"

	customerID = "cust-1"
	driverID   = "drv-1"
)

// fixture wires every service against in-memory repositories.
type fixture struct {
	uow      *MockUnitOfWork
	slabs    *MockCommissionSlabRepository
	locks    redis.LockStoreInterface
	distance *MockDistanceProvider

	settlement *service.SettlementEngine
	fares      *service.FareCalculator
	matcher    *service.RideMatcher
	lifecycle  *service.RideLifecycle
	drivers    *service.DriverService
	requests   *service.RideRequestService
	reports    *service.ReportService
	feedback   *service.FeedbackService
	catalog    *service.CatalogService

	rideDate time.Time
}

type fixtureOption func(*fixtureConfig)

type fixtureConfig struct {
	timeout time.Duration
	locks   redis.LockStoreInterface
	cache   redis.SlabCacheInterface
}

func withTimeout(d time.Duration) fixtureOption {
	return func(c *fixtureConfig) { c.timeout = d }
}

func withLockStore(s redis.LockStoreInterface) fixtureOption {
	return func(c *fixtureConfig) { c.locks = s }
}

func withSlabCache(cache redis.SlabCacheInterface) fixtureOption {
	return func(c *fixtureConfig) { c.cache = cache }
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func at(hour, minute int) domain.TimeOfDay {
	return domain.NewTimeOfDay(hour, minute)
}

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg := fixtureConfig{
		timeout: 5 * time.Second,
		locks:   NewMockLockStore(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	log := newTestLogger()
	uow := NewMockUnitOfWork()
	seedCatalog(uow.CatalogRepo)

	slabs := NewMockCommissionSlabRepository(
		domain.CommissionSlab{ID: "slab-1", FromKm: dec("0"), ToKm: dec("10"), CommissionPercentage: dec("20")},
		domain.CommissionSlab{ID: "slab-2", FromKm: dec("10"), ToKm: dec("50"), CommissionPercentage: dec("15")},
		domain.CommissionSlab{ID: "slab-3", FromKm: dec("50.01"), ToKm: dec("1000"), CommissionPercentage: dec("10")},
	)
	distance := NewMockDistanceProvider()

	settlement := service.NewSettlementEngine(service.DefaultPenaltyFee)
	fares := service.NewFareCalculator(slabs, cfg.cache, uow.Catalog(), settlement, log)
	locker := service.NewRetryingLocker(cfg.locks, 10*time.Second, time.Millisecond, log)
	notifier := service.NewNotificationService(log)
	policy := service.NewCancellationPolicy(service.DefaultCancellationPolicyConfig(), settlement)

	f := &fixture{
		uow:        uow,
		slabs:      slabs,
		locks:      cfg.locks,
		distance:   distance,
		settlement: settlement,
		fares:      fares,
		matcher:    service.NewRideMatcher(uow, cfg.timeout),
		lifecycle:  service.NewRideLifecycle(uow, locker, fares, settlement, policy, notifier, cfg.timeout, log),
		drivers:    service.NewDriverService(uow, locker, cfg.timeout, log),
		requests: service.NewRideRequestService(
			uow,
			service.NewDistanceService(distance, uow.Catalog(), cfg.timeout),
			fares,
			notifier,
			cfg.timeout,
			log,
		),
		reports:  service.NewReportService(uow.Rides(), cfg.timeout),
		feedback: service.NewFeedbackService(uow, notifier, cfg.timeout, log),
		catalog:  service.NewCatalogService(uow.Catalog(), fares, cfg.timeout, log),
		rideDate: domain.DateOf(time.Now().AddDate(0, 0, 1)),
	}

	f.addDriver(driverID, sedanModel)
	return f
}

func seedCatalog(c *MockCatalogRepository) {
	c.AddVehicleService(domain.VehicleService{ID: sedanService, Name: "Sedan", BaseFare: dec("50"), PerKmRate: dec("12")})
	c.AddVehicleService(domain.VehicleService{ID: autoService, Name: "Auto", BaseFare: dec("30"), PerKmRate: dec("8")})
	c.AddBrandModel(domain.BrandModel{ID: sedanModel, Brand: "Toyota", Model: "Etios", MinYear: 2015, VehicleServiceID: sedanService})
	c.AddBrandModel(domain.BrandModel{ID: autoModel, Brand: "Bajaj", Model: "RE", MinYear: 2012, VehicleServiceID: autoService})
	c.AddLocation(domain.Location{ID: locationA, Name: "Airport", IsActive: true})
	c.AddLocation(domain.Location{ID: locationB, Name: "Central Station", IsActive: true})
	c.AddLocation(domain.Location{ID: locationClosed, Name: "Old Terminal", IsActive: false})
}

// addDriver seeds a verified, on-duty driver. An empty brandModelID leaves the
// driver without a vehicle.
func (f *fixture) addDriver(id, brandModelID string) domain.Driver {
	d := domain.Driver{
		ID:                 id,
		UserID:             "user-" + id,
		LicenceNumber:      "LIC-" + id,
		VerificationStatus: domain.VerificationStatusVerified,
		IsAvailable:        true,
	}
	if brandModelID != "" {
		d.Vehicle = &domain.Vehicle{
			ID:                 "veh-" + id,
			DriverID:           id,
			BrandModelID:       brandModelID,
			RegistrationNumber: "KA01-" + strings.ToUpper(id),
			Year:               2020,
		}
	}
	f.uow.DriverRepo.AddDriver(d)
	return d
}

// addRequest seeds a PENDING sedan request for the fixture's ride date.
func (f *fixture) addRequest(id string, pickup domain.TimeOfDay) domain.RideRequest {
	req := domain.RideRequest{
		ID:                id,
		CustomerID:        customerID,
		VehicleServiceID:  sedanService,
		PickupLocationID:  locationA,
		DropoffLocationID: locationB,
		RideDate:          f.rideDate,
		PickupTime:        pickup,
		Status:            domain.RideRequestStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	f.uow.RideRequestRepo.AddRequest(req)
	return req
}

// addRide seeds a ride for the driver on the fixture's ride date.
func (f *fixture) addRide(id, driver string, pickup domain.TimeOfDay, status domain.RideStatus) domain.Ride {
	ride := domain.Ride{
		ID:                id,
		RequestID:         "req-for-" + id,
		CustomerID:        customerID,
		DriverID:          driver,
		VehicleServiceID:  sedanService,
		PickupLocationID:  locationA,
		DropoffLocationID: locationB,
		RideDate:          f.rideDate,
		PickupTime:        pickup,
		Status:            status,
	}
	f.uow.RideRepo.AddRide(ride)
	return ride
}

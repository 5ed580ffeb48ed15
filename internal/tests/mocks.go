package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/redis"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// Ensure mocks implement the interfaces the services depend on.
var (
	_ repository.UnitOfWork               = (*MockUnitOfWork)(nil)
	_ repository.RideRepository           = (*MockRideRepository)(nil)
	_ repository.RideRequestRepository    = (*MockRideRequestRepository)(nil)
	_ repository.DriverRepository         = (*MockDriverRepository)(nil)
	_ repository.CatalogRepository        = (*MockCatalogRepository)(nil)
	_ repository.FeedbackRepository       = (*MockFeedbackRepository)(nil)
	_ repository.CommissionSlabRepository = (*MockCommissionSlabRepository)(nil)
	_ redis.LockStoreInterface            = (*MockLockStore)(nil)
	_ redis.SlabCacheInterface            = (*MockSlabCache)(nil)
	_ service.DistanceProvider            = (*MockDistanceProvider)(nil)
)

// ──────────────────────────────────────────────
// MOCK UNIT OF WORK
// ──────────────────────────────────────────────

// MockUnitOfWork runs transactions against the in-memory repositories.
// Transactions run concurrently and see each other's writes as they happen;
// nothing here serializes them, so concurrent callers must bring their own
// exclusion. A transaction whose callback fails is rolled back by undoing its
// own writes in reverse order.
type MockUnitOfWork struct {
	RideRepo        *MockRideRepository
	RideRequestRepo *MockRideRequestRepository
	DriverRepo      *MockDriverRepository
	CatalogRepo     *MockCatalogRepository
	FeedbackRepo    *MockFeedbackRepository

	// Counters
	TxCallCount       int32
	RollbackCallCount int32

	// Error injection: returned in place of a successful commit.
	CommitError error
}

// NewMockUnitOfWork creates a unit of work over fresh repositories.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		RideRepo:        NewMockRideRepository(),
		RideRequestRepo: NewMockRideRequestRepository(),
		DriverRepo:      NewMockDriverRepository(),
		CatalogRepo:     NewMockCatalogRepository(),
		FeedbackRepo:    NewMockFeedbackRepository(),
	}
}

func (m *MockUnitOfWork) Rides() repository.RideRepository               { return m.RideRepo }
func (m *MockUnitOfWork) RideRequests() repository.RideRequestRepository { return m.RideRequestRepo }
func (m *MockUnitOfWork) Drivers() repository.DriverRepository           { return m.DriverRepo }
func (m *MockUnitOfWork) Catalog() repository.CatalogRepository          { return m.CatalogRepo }
func (m *MockUnitOfWork) Feedback() repository.FeedbackRepository        { return m.FeedbackRepo }

func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	atomic.AddInt32(&m.TxCallCount, 1)
	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &mockTx{uow: m}
	err := fn(tx)
	if err == nil {
		err = m.CommitError
	}
	if err != nil {
		atomic.AddInt32(&m.RollbackCallCount, 1)
		tx.rollback()
		return err
	}
	return nil
}

// mockTx is the Store handed to one WithinTx callback. Its repositories
// write straight through and journal how to undo each write.
type mockTx struct {
	uow *MockUnitOfWork

	mu   sync.Mutex
	undo []func()
}

func (t *mockTx) Rides() repository.RideRepository {
	return &txRideRepository{MockRideRepository: t.uow.RideRepo, tx: t}
}

func (t *mockTx) RideRequests() repository.RideRequestRepository {
	return &txRideRequestRepository{MockRideRequestRepository: t.uow.RideRequestRepo, tx: t}
}

func (t *mockTx) Drivers() repository.DriverRepository {
	return &txDriverRepository{MockDriverRepository: t.uow.DriverRepo, tx: t}
}

func (t *mockTx) Catalog() repository.CatalogRepository {
	return &txCatalogRepository{MockCatalogRepository: t.uow.CatalogRepo, tx: t}
}

func (t *mockTx) Feedback() repository.FeedbackRepository {
	return &txFeedbackRepository{MockFeedbackRepository: t.uow.FeedbackRepo, tx: t}
}

func (t *mockTx) record(undo func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.undo = append(t.undo, undo)
}

func (t *mockTx) rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

type txRideRepository struct {
	*MockRideRepository
	tx *mockTx
}

func (r *txRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	if err := r.MockRideRepository.Create(ctx, ride); err != nil {
		return err
	}
	id := ride.ID
	r.tx.record(func() { r.MockRideRepository.delete(id) })
	return nil
}

func (r *txRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	prev, ok := r.GetRide(ride.ID)
	if err := r.MockRideRepository.Update(ctx, ride); err != nil {
		return err
	}
	if ok {
		r.tx.record(func() { r.AddRide(prev) })
	}
	return nil
}

type txRideRequestRepository struct {
	*MockRideRequestRepository
	tx *mockTx
}

func (r *txRideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) error {
	if err := r.MockRideRequestRepository.Create(ctx, req); err != nil {
		return err
	}
	id := req.ID
	r.tx.record(func() { r.MockRideRequestRepository.delete(id) })
	return nil
}

func (r *txRideRequestRepository) Update(ctx context.Context, req *domain.RideRequest) error {
	prev, ok := r.GetRequest(req.ID)
	if err := r.MockRideRequestRepository.Update(ctx, req); err != nil {
		return err
	}
	if ok {
		r.tx.record(func() { r.AddRequest(prev) })
	}
	return nil
}

type txDriverRepository struct {
	*MockDriverRepository
	tx *mockTx
}

// journal snapshots the driver before a write and records its restore.
func (r *txDriverRepository) journal(id string, write func() error) error {
	prev, ok := r.GetDriver(id)
	if err := write(); err != nil {
		return err
	}
	if ok {
		r.tx.record(func() { r.AddDriver(prev) })
	}
	return nil
}

func (r *txDriverRepository) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, comment string, available bool) error {
	return r.journal(id, func() error {
		return r.MockDriverRepository.UpdateVerification(ctx, id, status, comment, available)
	})
}

func (r *txDriverRepository) UpdateAvailability(ctx context.Context, id string, available bool) error {
	return r.journal(id, func() error {
		return r.MockDriverRepository.UpdateAvailability(ctx, id, available)
	})
}

func (r *txDriverRepository) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.journal(vehicle.DriverID, func() error {
		return r.MockDriverRepository.AddVehicle(ctx, vehicle)
	})
}

func (r *txDriverRepository) DeleteVehicle(ctx context.Context, driverID string) error {
	return r.journal(driverID, func() error {
		return r.MockDriverRepository.DeleteVehicle(ctx, driverID)
	})
}

type txCatalogRepository struct {
	*MockCatalogRepository
	tx *mockTx
}

func (r *txCatalogRepository) SetLocationActive(ctx context.Context, id string, active bool) error {
	prev, err := r.GetLocation(ctx, id)
	if err != nil {
		return err
	}
	if err := r.MockCatalogRepository.SetLocationActive(ctx, id, active); err != nil {
		return err
	}
	r.tx.record(func() { r.AddLocation(*prev) })
	return nil
}

type txFeedbackRepository struct {
	*MockFeedbackRepository
	tx *mockTx
}

func (r *txFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	if err := r.MockFeedbackRepository.Create(ctx, f); err != nil {
		return err
	}
	id := f.ID
	r.tx.record(func() { r.MockFeedbackRepository.delete(id) })
	return nil
}

// ──────────────────────────────────────────────
// MOCK RIDE REPOSITORY
// ──────────────────────────────────────────────

// MockRideRepository is a mock implementation of RideRepository.
type MockRideRepository struct {
	mu    sync.RWMutex
	rides map[string]*domain.Ride

	// Counters for verification
	CreateCallCount       int32
	UpdateCallCount       int32
	FindInWindowCallCount int32
	LastWindowFrom        domain.TimeOfDay
	LastWindowTo          domain.TimeOfDay
	CountActiveCallCount  int32

	// FindInWindowDelay holds FindActiveInWindow after it has read, widening
	// the gap between a conflict check and the insert that follows it.
	FindInWindowDelay time.Duration

	// Error injection
	CreateError       error
	UpdateError       error
	FindInWindowError error
	CountActiveError  error
}

// NewMockRideRepository creates a new mock ride repository.
func NewMockRideRepository() *MockRideRepository {
	return &MockRideRepository{
		rides: make(map[string]*domain.Ride),
	}
}

// AddRide seeds a ride.
func (m *MockRideRepository) AddRide(ride domain.Ride) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rides[ride.ID] = copyRide(&ride)
}

// GetRide returns a ride for test assertions.
func (m *MockRideRepository) GetRide(id string) (domain.Ride, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return domain.Ride{}, false
	}
	return *copyRide(ride), true
}

// Count returns how many rides are stored.
func (m *MockRideRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rides)
}

func (m *MockRideRepository) Create(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rides {
		if existing.ID == ride.ID || existing.RequestID == ride.RequestID {
			return fmt.Errorf("%w: rides_request_id_key", repository.ErrDuplicate)
		}
	}
	m.rides[ride.ID] = copyRide(ride)
	return nil
}

func (m *MockRideRepository) GetByID(ctx context.Context, id string) (*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ride, ok := m.rides[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyRide(ride), nil
}

func (m *MockRideRepository) GetForUpdate(ctx context.Context, id string) (*domain.Ride, error) {
	return m.GetByID(ctx, id)
}

func (m *MockRideRepository) Update(ctx context.Context, ride *domain.Ride) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rides[ride.ID]; !ok {
		return repository.ErrNotFound
	}
	m.rides[ride.ID] = copyRide(ride)
	return nil
}

func (m *MockRideRepository) FindActiveInWindow(ctx context.Context, driverID string, rideDate time.Time, from, to domain.TimeOfDay) ([]*domain.Ride, error) {
	atomic.AddInt32(&m.FindInWindowCallCount, 1)
	if m.FindInWindowError != nil {
		return nil, m.FindInWindowError
	}
	m.mu.Lock()
	m.LastWindowFrom, m.LastWindowTo = from, to

	var result []*domain.Ride
	for _, r := range m.rides {
		if r.DriverID != driverID || !r.Status.IsActive() {
			continue
		}
		if !domain.DateOf(r.RideDate).Equal(domain.DateOf(rideDate)) {
			continue
		}
		if r.PickupTime < from || r.PickupTime > to {
			continue
		}
		result = append(result, copyRide(r))
	}
	sortRides(result, func(a, b *domain.Ride) bool { return a.PickupTime < b.PickupTime })
	m.mu.Unlock()

	if m.FindInWindowDelay > 0 {
		select {
		case <-time.After(m.FindInWindowDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return result, nil
}

func (m *MockRideRepository) CountActiveByDriver(ctx context.Context, driverID string) (int, error) {
	atomic.AddInt32(&m.CountActiveCallCount, 1)
	if m.CountActiveError != nil {
		return 0, m.CountActiveError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, r := range m.rides {
		if r.DriverID == driverID && r.Status.IsActive() {
			count++
		}
	}
	return count, nil
}

func (m *MockRideRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.rides {
		if r.CustomerID == userID || r.DriverID == userID {
			result = append(result, copyRide(r))
		}
	}
	sortRides(result, func(a, b *domain.Ride) bool {
		if !a.RideDate.Equal(b.RideDate) {
			return a.RideDate.After(b.RideDate)
		}
		return a.PickupTime > b.PickupTime
	})
	return result, nil
}

func (m *MockRideRepository) ListByDateRange(ctx context.Context, driverID string, from, to time.Time) ([]*domain.Ride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Ride
	for _, r := range m.inRange(driverID, from, to) {
		result = append(result, copyRide(r))
	}
	sortRides(result, func(a, b *domain.Ride) bool {
		if !a.RideDate.Equal(b.RideDate) {
			return a.RideDate.Before(b.RideDate)
		}
		return a.PickupTime < b.PickupTime
	})
	return result, nil
}

func (m *MockRideRepository) SumDriverEarnings(ctx context.Context, driverID string, from, to time.Time) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, r := range m.inRange(driverID, from, to) {
		total = total.Add(r.DriverEarning).Add(r.CancellationDriverEarning).Sub(r.DriverPenalty)
	}
	return total, nil
}

func (m *MockRideRepository) SumPlatformEarnings(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, r := range m.inRange("", from, to) {
		total = total.Add(r.SystemEarning).Add(r.CancellationSystemEarning)
	}
	return total, nil
}

// inRange must be called with mu held.
func (m *MockRideRepository) inRange(driverID string, from, to time.Time) []*domain.Ride {
	var result []*domain.Ride
	for _, r := range m.rides {
		if driverID != "" && r.DriverID != driverID {
			continue
		}
		if r.RideDate.Before(from) || r.RideDate.After(to) {
			continue
		}
		result = append(result, r)
	}
	return result
}

func (m *MockRideRepository) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rides, id)
}

func copyRide(r *domain.Ride) *domain.Ride {
	c := *r
	if r.DropoffTime != nil {
		t := *r.DropoffTime
		c.DropoffTime = &t
	}
	return &c
}

func sortRides(rides []*domain.Ride, less func(a, b *domain.Ride) bool) {
	sort.Slice(rides, func(i, j int) bool {
		if less(rides[i], rides[j]) {
			return true
		}
		if less(rides[j], rides[i]) {
			return false
		}
		return rides[i].ID < rides[j].ID
	})
}

// ──────────────────────────────────────────────
// MOCK RIDE REQUEST REPOSITORY
// ──────────────────────────────────────────────

// MockRideRequestRepository is a mock implementation of RideRequestRepository.
type MockRideRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]*domain.RideRequest

	// Counters
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError      error
	ListPendingError error
}

// NewMockRideRequestRepository creates a new mock ride request repository.
func NewMockRideRequestRepository() *MockRideRequestRepository {
	return &MockRideRequestRepository{
		requests: make(map[string]*domain.RideRequest),
	}
}

// AddRequest seeds a ride request.
func (m *MockRideRequestRepository) AddRequest(req domain.RideRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[req.ID] = &req
}

// GetRequest returns a ride request for test assertions.
func (m *MockRideRequestRepository) GetRequest(id string) (domain.RideRequest, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return domain.RideRequest{}, false
	}
	return *req, true
}

func (m *MockRideRequestRepository) Create(ctx context.Context, req *domain.RideRequest) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.requests[req.ID]; exists {
		return repository.ErrDuplicate
	}
	c := *req
	m.requests[req.ID] = &c
	return nil
}

func (m *MockRideRequestRepository) GetByID(ctx context.Context, id string) (*domain.RideRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *req
	return &c, nil
}

func (m *MockRideRequestRepository) GetForUpdate(ctx context.Context, id string) (*domain.RideRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *MockRideRequestRepository) Update(ctx context.Context, req *domain.RideRequest) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.requests[req.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *req
	m.requests[req.ID] = &c
	return nil
}

func (m *MockRideRequestRepository) ListPendingByService(ctx context.Context, vehicleServiceID string) ([]*domain.RideRequest, error) {
	if m.ListPendingError != nil {
		return nil, m.ListPendingError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.RideRequest
	for _, req := range m.requests {
		if req.VehicleServiceID == vehicleServiceID && req.IsPending() {
			c := *req
			result = append(result, &c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockRideRequestRepository) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.requests, id)
}

// ──────────────────────────────────────────────
// MOCK DRIVER REPOSITORY
// ──────────────────────────────────────────────

// MockDriverRepository is a mock implementation of DriverRepository.
type MockDriverRepository struct {
	mu      sync.RWMutex
	drivers map[string]*domain.Driver

	// Counters for verification
	UpdateAvailabilityCallCount int32

	// Error injection
	UpdateAvailabilityError error
}

// NewMockDriverRepository creates a new mock driver repository.
func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{
		drivers: make(map[string]*domain.Driver),
	}
}

// AddDriver seeds a driver.
func (m *MockDriverRepository) AddDriver(driver domain.Driver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivers[driver.ID] = copyDriver(&driver)
}

// GetDriver returns a driver for test assertions.
func (m *MockDriverRepository) GetDriver(id string) (domain.Driver, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drivers[id]
	if !ok {
		return domain.Driver{}, false
	}
	return *copyDriver(d), true
}

func (m *MockDriverRepository) GetByID(ctx context.Context, id string) (*domain.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.drivers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	return copyDriver(d), nil
}

func (m *MockDriverRepository) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, comment string, available bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.VerificationStatus = status
	d.VerificationComment = comment
	d.IsAvailable = available
	return nil
}

func (m *MockDriverRepository) UpdateAvailability(ctx context.Context, id string, available bool) error {
	atomic.AddInt32(&m.UpdateAvailabilityCallCount, 1)
	if m.UpdateAvailabilityError != nil {
		return m.UpdateAvailabilityError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[id]
	if !ok {
		return repository.ErrNotFound
	}
	d.IsAvailable = available
	return nil
}

func (m *MockDriverRepository) AddVehicle(ctx context.Context, vehicle *domain.Vehicle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[vehicle.DriverID]
	if !ok {
		return repository.ErrNotFound
	}
	for _, other := range m.drivers {
		if other.Vehicle != nil && other.Vehicle.RegistrationNumber == vehicle.RegistrationNumber {
			return fmt.Errorf("%w: vehicles_registration_number_key", repository.ErrDuplicate)
		}
	}
	v := *vehicle
	d.Vehicle = &v
	return nil
}

func (m *MockDriverRepository) DeleteVehicle(ctx context.Context, driverID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drivers[driverID]
	if !ok || d.Vehicle == nil {
		return repository.ErrNotFound
	}
	d.Vehicle = nil
	return nil
}

func copyDriver(d *domain.Driver) *domain.Driver {
	c := *d
	if d.Vehicle != nil {
		v := *d.Vehicle
		c.Vehicle = &v
	}
	return &c
}

// ──────────────────────────────────────────────
// MOCK CATALOG REPOSITORY
// ──────────────────────────────────────────────

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mu          sync.RWMutex
	locations   map[string]domain.Location
	brandModels map[string]domain.BrandModel
	services    map[string]domain.VehicleService
}

// NewMockCatalogRepository creates a new mock catalog repository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		locations:   make(map[string]domain.Location),
		brandModels: make(map[string]domain.BrandModel),
		services:    make(map[string]domain.VehicleService),
	}
}

// AddLocation seeds a location.
func (m *MockCatalogRepository) AddLocation(loc domain.Location) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locations[loc.ID] = loc
}

// AddBrandModel seeds a brand model.
func (m *MockCatalogRepository) AddBrandModel(bm domain.BrandModel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.brandModels[bm.ID] = bm
}

// AddVehicleService seeds a vehicle service.
func (m *MockCatalogRepository) AddVehicleService(svc domain.VehicleService) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.services[svc.ID] = svc
}

func (m *MockCatalogRepository) GetLocation(ctx context.Context, id string) (*domain.Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &loc, nil
}

func (m *MockCatalogRepository) SetLocationActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	loc, ok := m.locations[id]
	if !ok {
		return repository.ErrNotFound
	}
	loc.IsActive = active
	m.locations[id] = loc
	return nil
}

func (m *MockCatalogRepository) GetBrandModel(ctx context.Context, id string) (*domain.BrandModel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bm, ok := m.brandModels[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &bm, nil
}

func (m *MockCatalogRepository) GetVehicleService(ctx context.Context, id string) (*domain.VehicleService, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	svc, ok := m.services[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &svc, nil
}

// ──────────────────────────────────────────────
// MOCK FEEDBACK REPOSITORY
// ──────────────────────────────────────────────

// MockFeedbackRepository is a mock implementation of FeedbackRepository.
type MockFeedbackRepository struct {
	mu       sync.RWMutex
	feedback map[string]domain.Feedback

	// Counters
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockFeedbackRepository creates a new mock feedback repository.
func NewMockFeedbackRepository() *MockFeedbackRepository {
	return &MockFeedbackRepository{
		feedback: make(map[string]domain.Feedback),
	}
}

// AddFeedback seeds feedback.
func (m *MockFeedbackRepository) AddFeedback(f domain.Feedback) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feedback[f.ID] = f
}

// Count returns how much feedback is stored.
func (m *MockFeedbackRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.feedback)
}

func (m *MockFeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.feedback {
		if existing.RideID == f.RideID && existing.FromUserID == f.FromUserID && existing.ToUserID == f.ToUserID {
			return fmt.Errorf("%w: feedback_ride_id_from_user_id_to_user_id_key", repository.ErrDuplicate)
		}
	}
	m.feedback[f.ID] = *f
	return nil
}

func (m *MockFeedbackRepository) Exists(ctx context.Context, fromUserID, toUserID, rideID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, f := range m.feedback {
		if f.RideID == rideID && f.FromUserID == fromUserID && f.ToUserID == toUserID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockFeedbackRepository) SummaryFor(ctx context.Context, userID string) (domain.RatingSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	summary := domain.RatingSummary{UserID: userID, Average: decimal.Zero}
	total := 0
	for _, f := range m.feedback {
		if f.ToUserID == userID {
			total += f.Rating
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = decimal.NewFromInt(int64(total)).Div(decimal.NewFromInt(int64(summary.Count))).Round(2)
	}
	return summary, nil
}

func (m *MockFeedbackRepository) delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.feedback, id)
}

// ──────────────────────────────────────────────
// MOCK COMMISSION SLAB REPOSITORY
// ──────────────────────────────────────────────

// MockCommissionSlabRepository is a mock implementation of CommissionSlabRepository.
type MockCommissionSlabRepository struct {
	mu    sync.RWMutex
	slabs []domain.CommissionSlab

	// Counters
	ListCallCount int32

	// Error injection
	ListError error
}

// NewMockCommissionSlabRepository creates a slab repository holding slabs.
func NewMockCommissionSlabRepository(slabs ...domain.CommissionSlab) *MockCommissionSlabRepository {
	return &MockCommissionSlabRepository{slabs: slabs}
}

// SetSlabs replaces the stored slab table.
func (m *MockCommissionSlabRepository) SetSlabs(slabs ...domain.CommissionSlab) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slabs = slabs
}

func (m *MockCommissionSlabRepository) List(ctx context.Context) ([]domain.CommissionSlab, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.CommissionSlab, len(m.slabs))
	copy(result, m.slabs)
	sort.SliceStable(result, func(i, j int) bool { return result[i].FromKm.LessThan(result[j].FromKm) })
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStore.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]string

	// Counters
	AcquireCallCount int32
	ReleaseCallCount int32

	// Error injection
	AcquireError error

	// Force lock failure
	ForceAcquireFailure bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{
		locks: make(map[string]string),
	}
}

func (m *MockLockStore) AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (string, bool, error) {
	atomic.AddInt32(&m.AcquireCallCount, 1)
	if m.AcquireError != nil {
		return "", false, m.AcquireError
	}
	if m.ForceAcquireFailure {
		return "", false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, held := m.locks[driverID]; held {
		return "", false, nil
	}
	token := uuid.NewString()
	m.locks[driverID] = token
	return token, true, nil
}

func (m *MockLockStore) ReleaseDriverLock(ctx context.Context, driverID, token string) error {
	atomic.AddInt32(&m.ReleaseCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[driverID] == token {
		delete(m.locks, driverID)
	}
	return nil
}

// IsLocked checks if a driver is locked (for test assertions).
func (m *MockLockStore) IsLocked(driverID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, held := m.locks[driverID]
	return held
}

// ──────────────────────────────────────────────
// MOCK SLAB CACHE
// ──────────────────────────────────────────────

// MockSlabCache is a mock implementation of SlabCacheInterface.
type MockSlabCache struct {
	mu    sync.Mutex
	slabs []domain.CommissionSlab

	// Counters
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError error
	SetError error
}

// NewMockSlabCache creates an empty slab cache.
func NewMockSlabCache() *MockSlabCache {
	return &MockSlabCache{}
}

func (m *MockSlabCache) GetCommissionSlabs(ctx context.Context) ([]domain.CommissionSlab, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slabs, nil
}

func (m *MockSlabCache) SetCommissionSlabs(ctx context.Context, slabs []domain.CommissionSlab) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	if m.SetError != nil {
		return m.SetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slabs = slabs
	return nil
}

func (m *MockSlabCache) InvalidateCommissionSlabs(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slabs = nil
	return nil
}

// ──────────────────────────────────────────────
// MOCK DISTANCE PROVIDER
// ──────────────────────────────────────────────

// MockDistanceProvider returns fixed distances keyed by "origin->destination".
type MockDistanceProvider struct {
	mu     sync.Mutex
	meters map[string]int64

	// Counters
	CallCount int32

	// Error injection
	Error error

	// Delay before answering; the provider honours ctx while waiting.
	Delay time.Duration
}

// NewMockDistanceProvider creates a distance provider with no routes.
func NewMockDistanceProvider() *MockDistanceProvider {
	return &MockDistanceProvider{meters: make(map[string]int64)}
}

// SetDistance registers the distance between two location IDs.
func (m *MockDistanceProvider) SetDistance(originID, destinationID string, meters int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.meters[originID+"->"+destinationID] = meters
}

func (m *MockDistanceProvider) DistanceMeters(ctx context.Context, origin, destination domain.Location) (int64, error) {
	atomic.AddInt32(&m.CallCount, 1)
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Error != nil {
		return 0, m.Error
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	meters, ok := m.meters[origin.ID+"->"+destination.ID]
	if !ok {
		return 0, fmt.Errorf("no route from %s to %s", origin.ID, destination.ID)
	}
	return meters, nil
}

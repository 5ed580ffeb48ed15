package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

func TestAcceptRequest_CreatesScheduledRide(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := f.addRequest("req-1", at(9, 30))

	ride, err := f.lifecycle.AcceptRequest(ctx, driverID, req.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if ride.Status != domain.RideStatusScheduled {
		t.Errorf("expected status SCHEDULED, got %s", ride.Status)
	}
	if ride.RequestID != req.ID || ride.CustomerID != req.CustomerID || ride.DriverID != driverID {
		t.Errorf("ride does not reference request and driver: %+v", ride)
	}
	if ride.PickupLocationID != req.PickupLocationID || ride.DropoffLocationID != req.DropoffLocationID {
		t.Errorf("expected locations %s->%s, got %s->%s",
			req.PickupLocationID, req.DropoffLocationID, ride.PickupLocationID, ride.DropoffLocationID)
	}
	if !ride.RideDate.Equal(req.RideDate) || ride.PickupTime != req.PickupTime {
		t.Errorf("expected %s %s, got %s %s",
			domain.FormatDate(req.RideDate), req.PickupTime, domain.FormatDate(ride.RideDate), ride.PickupTime)
	}
	if !ride.TotalCost.IsZero() || !ride.DriverEarning.IsZero() || !ride.SystemEarning.IsZero() {
		t.Error("expected money fields to start at zero")
	}
	if ride.DropoffTime != nil {
		t.Error("expected no dropoff time on a scheduled ride")
	}

	stored, ok := f.uow.RideRepo.GetRide(ride.ID)
	if !ok {
		t.Fatal("expected ride to be stored")
	}
	if stored.Status != domain.RideStatusScheduled {
		t.Errorf("expected stored status SCHEDULED, got %s", stored.Status)
	}

	updated, _ := f.uow.RideRequestRepo.GetRequest(req.ID)
	if updated.Status != domain.RideRequestStatusAccepted {
		t.Errorf("expected request ACCEPTED, got %s", updated.Status)
	}
}

func TestAcceptRequest_SecondAcceptIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDriver("drv-2", sedanModel)
	req := f.addRequest("req-1", at(10, 0))

	if _, err := f.lifecycle.AcceptRequest(ctx, driverID, req.ID); err != nil {
		t.Fatalf("first accept failed: %v", err)
	}

	_, err := f.lifecycle.AcceptRequest(ctx, "drv-2", req.ID)
	if !errors.Is(err, service.ErrInvalidState) {
		t.Fatalf("expected InvalidState, got %v", err)
	}
	if !errors.Is(err, service.ErrRequestNotPending) {
		t.Errorf("expected ErrRequestNotPending, got %v", err)
	}
	if got := f.uow.RideRepo.Count(); got != 1 {
		t.Errorf("expected 1 ride, got %d", got)
	}
}

func TestAcceptRequest_ConflictWindow(t *testing.T) {
	testCases := []struct {
		name     string
		pickup   domain.TimeOfDay
		conflict bool
	}{
		{"same time", at(14, 0), true},
		{"thirty minutes after", at(14, 30), true},
		{"thirty one minutes after", at(14, 31), false},
		{"one hour after", at(15, 0), false},
		{"fifteen minutes before", at(13, 45), true},
		{"sixteen minutes before", at(13, 44), false},
		// The window hangs off the booked ride, so an earlier pickup only
		// needs 15 minutes of clearance even though its own trip overlaps.
		{"twenty five minutes before", at(13, 35), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)
			f.addRide("ride-booked", driverID, at(14, 0), domain.RideStatusScheduled)
			req := f.addRequest("req-new", tc.pickup)

			ride, err := f.lifecycle.AcceptRequest(ctx, driverID, req.ID)

			if tc.conflict {
				if !errors.Is(err, service.ErrConflict) {
					t.Fatalf("expected Conflict for pickup %s, got %v", tc.pickup, err)
				}
				if got := f.uow.RideRepo.Count(); got != 1 {
					t.Errorf("expected no new ride, have %d rides", got)
				}
				stored, _ := f.uow.RideRequestRepo.GetRequest(req.ID)
				if stored.Status != domain.RideRequestStatusPending {
					t.Errorf("expected request to stay PENDING, got %s", stored.Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("expected success for pickup %s, got %v", tc.pickup, err)
			}
			if ride.PickupTime != tc.pickup {
				t.Errorf("expected pickup %s, got %s", tc.pickup, ride.PickupTime)
			}
		})
	}
}

func TestAcceptRequest_IgnoresInactiveAndOtherDayRides(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRide("ride-done", driverID, at(14, 0), domain.RideStatusCompleted)
	f.addRide("ride-cancelled", driverID, at(14, 10), domain.RideStatusCancelled)

	otherDay := f.addRide("ride-tomorrow", driverID, at(14, 0), domain.RideStatusScheduled)
	otherDay.RideDate = f.rideDate.AddDate(0, 0, 1)
	f.uow.RideRepo.AddRide(otherDay)

	f.addDriver("drv-2", sedanModel)
	f.addRide("ride-other-driver", "drv-2", at(14, 0), domain.RideStatusOngoing)

	req := f.addRequest("req-1", at(14, 0))
	if _, err := f.lifecycle.AcceptRequest(ctx, driverID, req.ID); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
}

func TestAcceptRequest_ChecksDriverEligibility(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(d *domain.Driver)
		wantErr error
	}{
		{
			name:    "unverified",
			mutate:  func(d *domain.Driver) { d.VerificationStatus = domain.VerificationStatusPending },
			wantErr: service.ErrDriverNotVerified,
		},
		{
			name:    "off duty",
			mutate:  func(d *domain.Driver) { d.IsAvailable = false },
			wantErr: service.ErrDriverOffDuty,
		},
		{
			name:    "no vehicle",
			mutate:  func(d *domain.Driver) { d.Vehicle = nil },
			wantErr: service.ErrDriverHasNoVehicle,
		},
		{
			name:    "wrong vehicle class",
			mutate:  func(d *domain.Driver) { d.Vehicle.BrandModelID = autoModel },
			wantErr: service.ErrVehicleClassMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			d, _ := f.uow.DriverRepo.GetDriver(driverID)
			tc.mutate(&d)
			f.uow.DriverRepo.AddDriver(d)
			req := f.addRequest("req-1", at(8, 0))

			_, err := f.lifecycle.AcceptRequest(context.Background(), driverID, req.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, service.ErrInvalidState) {
				t.Errorf("expected InvalidState kind, got %v", err)
			}
		})
	}
}

func TestAcceptRequest_UnknownEntities(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRequest("req-1", at(8, 0))

	_, err := f.lifecycle.AcceptRequest(ctx, driverID, "missing")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound for unknown request, got %v", err)
	}

	_, err = f.lifecycle.AcceptRequest(ctx, "ghost", "req-1")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound for unknown driver, got %v", err)
	}

	_, err = f.lifecycle.AcceptRequest(ctx, "", "req-1")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected InvalidInput for empty driver, got %v", err)
	}
}

func TestAcceptRequest_LockTimeout(t *testing.T) {
	locks := NewMockLockStore()
	locks.ForceAcquireFailure = true
	f := newFixture(t, withLockStore(locks), withTimeout(30*time.Millisecond))
	req := f.addRequest("req-1", at(8, 0))

	_, err := f.lifecycle.AcceptRequest(context.Background(), driverID, req.ID)
	if !errors.Is(err, service.ErrUpstream) {
		t.Fatalf("expected Upstream, got %v", err)
	}
	if !errors.Is(err, service.ErrLockTimeout) {
		t.Errorf("expected ErrLockTimeout, got %v", err)
	}
	if got := f.uow.RideRepo.Count(); got != 0 {
		t.Errorf("expected no ride, got %d", got)
	}
}

func TestAcceptRequest_ReleasesDriverLock(t *testing.T) {
	locks := NewMockLockStore()
	f := newFixture(t, withLockStore(locks))
	f.addRide("ride-booked", driverID, at(14, 0), domain.RideStatusScheduled)
	req := f.addRequest("req-1", at(14, 0))

	if _, err := f.lifecycle.AcceptRequest(context.Background(), driverID, req.ID); err == nil {
		t.Fatal("expected conflict")
	}
	if locks.IsLocked(driverID) {
		t.Error("expected driver lock to be released after a failed accept")
	}
	if locks.ReleaseCallCount != 1 {
		t.Errorf("expected 1 release, got %d", locks.ReleaseCallCount)
	}
}

func TestRideStart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusScheduled)

	ride, err := f.lifecycle.Start(ctx, "ride-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ride.Status != domain.RideStatusOngoing {
		t.Errorf("expected ONGOING, got %s", ride.Status)
	}

	_, err = f.lifecycle.Start(ctx, "ride-1")
	if !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("expected InvalidState on second start, got %v", err)
	}

	_, err = f.lifecycle.Start(ctx, "missing")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRideComplete_PricesTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusOngoing)

	ride, err := f.lifecycle.Complete(ctx, "ride-1", dec("12.5"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// 50 + 12 * 12.5 = 200, 15% slab.
	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"total km", ride.TotalKm, "12.5"},
		{"total cost", ride.TotalCost, "200"},
		{"commission", ride.CommissionPercentage, "15"},
		{"system earning", ride.SystemEarning, "30"},
		{"driver earning", ride.DriverEarning, "170"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
	if ride.Status != domain.RideStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", ride.Status)
	}
	if ride.DropoffTime == nil {
		t.Error("expected dropoff time to be set")
	}
	if !ride.DriverEarning.Add(ride.SystemEarning).Equal(ride.TotalCost) {
		t.Error("expected earnings to add up to total cost")
	}
}

func TestRideComplete_RoundsDistanceAndSplit(t *testing.T) {
	f := newFixture(t)
	f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusOngoing)

	// 7.333 km rounds to 7.33; 50 + 87.96 = 137.96; 20% = 27.592 -> 27.59.
	ride, err := f.lifecycle.Complete(context.Background(), "ride-1", dec("7.333"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !ride.TotalKm.Equal(dec("7.33")) {
		t.Errorf("expected 7.33 km, got %s", ride.TotalKm)
	}
	if !ride.TotalCost.Equal(dec("137.96")) {
		t.Errorf("expected cost 137.96, got %s", ride.TotalCost)
	}
	if !ride.SystemEarning.Equal(dec("27.59")) {
		t.Errorf("expected system earning 27.59, got %s", ride.SystemEarning)
	}
	if !ride.DriverEarning.Equal(dec("110.37")) {
		t.Errorf("expected driver earning 110.37, got %s", ride.DriverEarning)
	}
}

func TestRideComplete_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRide("ride-scheduled", driverID, at(9, 0), domain.RideStatusScheduled)
	f.addRide("ride-ongoing", driverID, at(11, 0), domain.RideStatusOngoing)

	_, err := f.lifecycle.Complete(ctx, "ride-scheduled", dec("5"))
	if !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("expected InvalidState completing a scheduled ride, got %v", err)
	}

	_, err = f.lifecycle.Complete(ctx, "ride-ongoing", dec("-1"))
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected InvalidInput for negative distance, got %v", err)
	}

	// No slab covers 5000 km.
	_, err = f.lifecycle.Complete(ctx, "ride-ongoing", dec("5000"))
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound without a covering slab, got %v", err)
	}
	stored, _ := f.uow.RideRepo.GetRide("ride-ongoing")
	if stored.Status != domain.RideStatusOngoing {
		t.Errorf("expected ride to stay ONGOING, got %s", stored.Status)
	}
}

func TestRideCancel_Settlement(t *testing.T) {
	testCases := []struct {
		name       string
		penalty    string
		wantSystem string
	}{
		{"no penalty", "0", "0"},
		{"with penalty", "50", "120"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusScheduled)

			ride, err := f.lifecycle.Cancel(context.Background(), "ride-1", domain.CancellationDetails{
				CancellationCharge: dec("80"),
				DriverEarning:      dec("30"),
				SystemEarning:      dec("50"),
				DriverPenalty:      dec(tc.penalty),
			})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if ride.Status != domain.RideStatusCancelled {
				t.Errorf("expected CANCELLED, got %s", ride.Status)
			}
			if !ride.CancellationCharge.Equal(dec("80")) ||
				!ride.CancellationDriverEarning.Equal(dec("30")) ||
				!ride.CancellationSystemEarning.Equal(dec("50")) ||
				!ride.DriverPenalty.Equal(dec(tc.penalty)) {
				t.Errorf("cancellation amounts not stored: %+v", ride)
			}
			if !ride.DriverEarning.IsZero() {
				t.Errorf("expected driver earning 0, got %s", ride.DriverEarning)
			}
			if !ride.SystemEarning.Equal(dec(tc.wantSystem)) {
				t.Errorf("expected system earning %s, got %s", tc.wantSystem, ride.SystemEarning)
			}

			d, _ := f.uow.DriverRepo.GetDriver(driverID)
			if !d.IsAvailable {
				t.Error("expected driver to be back on duty")
			}
		})
	}
}

func TestRideCancel_KeepsTripFields(t *testing.T) {
	f := newFixture(t)
	ride := f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusOngoing)
	ride.TotalKm = dec("4.2")
	ride.CommissionPercentage = dec("20")
	f.uow.RideRepo.AddRide(ride)

	cancelled, err := f.lifecycle.Cancel(context.Background(), "ride-1", domain.CancellationDetails{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !cancelled.TotalKm.Equal(dec("4.2")) || !cancelled.CommissionPercentage.Equal(dec("20")) {
		t.Errorf("expected trip fields to be kept, got km=%s commission=%s",
			cancelled.TotalKm, cancelled.CommissionPercentage)
	}
}

func TestRideCancel_Rejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addRide("ride-done", driverID, at(9, 0), domain.RideStatusCompleted)
	f.addRide("ride-open", driverID, at(12, 0), domain.RideStatusScheduled)

	_, err := f.lifecycle.Cancel(ctx, "ride-done", domain.CancellationDetails{})
	if !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("expected InvalidState cancelling a completed ride, got %v", err)
	}

	_, err = f.lifecycle.Cancel(ctx, "ride-open", domain.CancellationDetails{DriverPenalty: dec("-5")})
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected InvalidInput for a negative amount, got %v", err)
	}
	stored, _ := f.uow.RideRepo.GetRide("ride-open")
	if stored.Status != domain.RideStatusScheduled {
		t.Errorf("expected ride to stay SCHEDULED, got %s", stored.Status)
	}

	_, err = f.lifecycle.Cancel(ctx, "missing", domain.CancellationDetails{})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestRideCancel_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusScheduled)
	f.uow.DriverRepo.UpdateAvailabilityError = errors.New("connection reset")

	_, err := f.lifecycle.Cancel(context.Background(), "ride-1", domain.CancellationDetails{})
	if !errors.Is(err, service.ErrUpstream) {
		t.Fatalf("expected Upstream, got %v", err)
	}
	stored, _ := f.uow.RideRepo.GetRide("ride-1")
	if stored.Status != domain.RideStatusScheduled {
		t.Errorf("expected ride to stay SCHEDULED, got %s", stored.Status)
	}
	if f.uow.RollbackCallCount != 1 {
		t.Errorf("expected 1 rollback, got %d", f.uow.RollbackCallCount)
	}
}

func TestRideLifecycle_FullFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	req := f.addRequest("req-1", at(18, 0))

	ride, err := f.lifecycle.AcceptRequest(ctx, driverID, req.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ride, err = f.lifecycle.Start(ctx, ride.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if ride, err = f.lifecycle.Complete(ctx, ride.ID, dec("3")); err != nil {
		t.Fatalf("complete: %v", err)
	}

	// 50 + 36 = 86, 20% = 17.20.
	if !ride.TotalCost.Equal(dec("86")) || !ride.SystemEarning.Equal(dec("17.2")) {
		t.Errorf("unexpected fare: cost=%s system=%s", ride.TotalCost, ride.SystemEarning)
	}

	if _, err := f.lifecycle.Cancel(ctx, ride.ID, domain.CancellationDetails{}); !errors.Is(err, service.ErrInvalidState) {
		t.Errorf("expected InvalidState cancelling a completed ride, got %v", err)
	}
}

func TestRideCancel_MissingRideReportsNotFoundFirst(t *testing.T) {
	f := newFixture(t)

	_, err := f.lifecycle.Cancel(context.Background(), "missing", domain.CancellationDetails{DriverPenalty: dec("-5")})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound for an unknown ride, got %v", err)
	}
	if errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected amounts not to be checked before the ride is found, got %v", err)
	}
}

func TestRideTransitions_TakeDriverLock(t *testing.T) {
	t.Run("each transition locks and releases", func(t *testing.T) {
		locks := NewMockLockStore()
		f := newFixture(t, withLockStore(locks))
		ctx := context.Background()
		f.addRide("ride-1", driverID, at(9, 0), domain.RideStatusScheduled)
		f.addRide("ride-2", driverID, at(12, 0), domain.RideStatusScheduled)

		if _, err := f.lifecycle.Start(ctx, "ride-1"); err != nil {
			t.Fatalf("start: %v", err)
		}
		if _, err := f.lifecycle.Complete(ctx, "ride-1", dec("3")); err != nil {
			t.Fatalf("complete: %v", err)
		}
		if _, err := f.lifecycle.CancelAs(ctx, "ride-2", domain.RoleCustomer); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		if locks.AcquireCallCount != 3 {
			t.Errorf("expected 3 lock acquisitions, got %d", locks.AcquireCallCount)
		}
		if locks.ReleaseCallCount != 3 {
			t.Errorf("expected 3 lock releases, got %d", locks.ReleaseCallCount)
		}
		if locks.IsLocked(driverID) {
			t.Error("expected driver lock to be released")
		}
	})

	t.Run("held lock blocks start and complete", func(t *testing.T) {
		locks := NewMockLockStore()
		locks.ForceAcquireFailure = true
		f := newFixture(t, withLockStore(locks), withTimeout(30*time.Millisecond))
		ctx := context.Background()
		f.addRide("ride-scheduled", driverID, at(9, 0), domain.RideStatusScheduled)
		f.addRide("ride-ongoing", driverID, at(12, 0), domain.RideStatusOngoing)

		if _, err := f.lifecycle.Start(ctx, "ride-scheduled"); !errors.Is(err, service.ErrLockTimeout) {
			t.Errorf("expected ErrLockTimeout on start, got %v", err)
		}
		if _, err := f.lifecycle.Complete(ctx, "ride-ongoing", dec("3")); !errors.Is(err, service.ErrLockTimeout) {
			t.Errorf("expected ErrLockTimeout on complete, got %v", err)
		}

		scheduled, _ := f.uow.RideRepo.GetRide("ride-scheduled")
		ongoing, _ := f.uow.RideRepo.GetRide("ride-ongoing")
		if scheduled.Status != domain.RideStatusScheduled || ongoing.Status != domain.RideStatusOngoing {
			t.Errorf("expected rides untouched, got %s and %s", scheduled.Status, ongoing.Status)
		}
		if f.uow.TxCallCount != 0 {
			t.Errorf("expected no transaction without the lock, got %d", f.uow.TxCallCount)
		}
	})
}

func TestRideCancelAs_PolicyAmounts(t *testing.T) {
	testCases := []struct {
		name       string
		by         domain.Role
		status     domain.RideStatus
		wantCharge string
		wantDriver string
		wantShare  string
		wantPenal  string
		wantSystem string
	}{
		{"driver cancels scheduled", domain.RoleDriver, domain.RideStatusScheduled, "0", "0", "0", "50", "120"},
		{"driver cancels ongoing", domain.RoleDriver, domain.RideStatusOngoing, "0", "0", "0", "50", "120"},
		{"customer cancels scheduled", domain.RoleCustomer, domain.RideStatusScheduled, "0", "0", "0", "0", "0"},
		{"customer cancels ongoing", domain.RoleCustomer, domain.RideStatusOngoing, "50", "40", "10", "0", "0"},
		{"admin cancels ongoing", domain.RoleAdmin, domain.RideStatusOngoing, "0", "0", "0", "0", "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.addRide("ride-1", driverID, at(9, 0), tc.status)

			ride, err := f.lifecycle.CancelAs(context.Background(), "ride-1", tc.by)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if ride.Status != domain.RideStatusCancelled {
				t.Errorf("expected CANCELLED, got %s", ride.Status)
			}
			if !ride.CancellationCharge.Equal(dec(tc.wantCharge)) {
				t.Errorf("expected charge %s, got %s", tc.wantCharge, ride.CancellationCharge)
			}
			if !ride.CancellationDriverEarning.Equal(dec(tc.wantDriver)) {
				t.Errorf("expected driver share %s, got %s", tc.wantDriver, ride.CancellationDriverEarning)
			}
			if !ride.CancellationSystemEarning.Equal(dec(tc.wantShare)) {
				t.Errorf("expected platform share %s, got %s", tc.wantShare, ride.CancellationSystemEarning)
			}
			if !ride.DriverPenalty.Equal(dec(tc.wantPenal)) {
				t.Errorf("expected penalty %s, got %s", tc.wantPenal, ride.DriverPenalty)
			}
			if !ride.SystemEarning.Equal(dec(tc.wantSystem)) {
				t.Errorf("expected system earning %s, got %s", tc.wantSystem, ride.SystemEarning)
			}
		})
	}
}

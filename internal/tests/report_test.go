package tests

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

func TestEarningsReports(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDriver("drv-2", sedanModel)

	completed := f.addRide("ride-1", driverID, at(8, 0), domain.RideStatusCompleted)
	completed.DriverEarning = dec("170")
	completed.SystemEarning = dec("30")
	f.uow.RideRepo.AddRide(completed)

	penalised := f.addRide("ride-2", driverID, at(12, 0), domain.RideStatusCancelled)
	penalised.CancellationDriverEarning = dec("25")
	penalised.CancellationSystemEarning = dec("15")
	penalised.DriverPenalty = dec("50")
	penalised.SystemEarning = dec("120")
	f.uow.RideRepo.AddRide(penalised)

	other := f.addRide("ride-3", "drv-2", at(9, 0), domain.RideStatusCompleted)
	other.DriverEarning = dec("90")
	other.SystemEarning = dec("10")
	f.uow.RideRepo.AddRide(other)

	outside := f.addRide("ride-4", driverID, at(9, 0), domain.RideStatusCompleted)
	outside.RideDate = f.rideDate.AddDate(0, 0, 7)
	outside.DriverEarning = dec("1000")
	f.uow.RideRepo.AddRide(outside)

	report, err := f.reports.DriverEarnings(ctx, driverID, f.rideDate, f.rideDate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 170 + 25 - 50.
	if !report.Total.Equal(dec("145")) {
		t.Errorf("expected driver total 145, got %s", report.Total)
	}
	if report.RideCount != 2 {
		t.Errorf("expected 2 rides, got %d", report.RideCount)
	}

	platform, err := f.reports.PlatformEarnings(ctx, f.rideDate, f.rideDate)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 30 + 120 + 15 + 10.
	if !platform.Total.Equal(dec("175")) {
		t.Errorf("expected platform total 175, got %s", platform.Total)
	}
	if platform.RideCount != 3 {
		t.Errorf("expected 3 rides, got %d", platform.RideCount)
	}

	_, err = f.reports.PlatformEarnings(ctx, f.rideDate, f.rideDate.AddDate(0, 0, -1))
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected InvalidInput for a reversed range, got %v", err)
	}
}

func TestRidesForUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.addDriver("drv-2", sedanModel)
	f.addRide("ride-early", driverID, at(8, 0), domain.RideStatusCompleted)
	f.addRide("ride-late", driverID, at(17, 0), domain.RideStatusScheduled)
	f.addRide("ride-other", "drv-2", at(9, 0), domain.RideStatusScheduled)

	rides, err := f.reports.RidesForUser(ctx, driverID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rides) != 2 {
		t.Fatalf("expected 2 rides, got %d", len(rides))
	}
	if rides[0].ID != "ride-late" {
		t.Errorf("expected latest ride first, got %s", rides[0].ID)
	}

	asCustomer, err := f.reports.RidesForUser(ctx, customerID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(asCustomer) != 3 {
		t.Errorf("expected 3 rides for the customer, got %d", len(asCustomer))
	}

	_, err = f.reports.Ride(ctx, "missing")
	if !errors.Is(err, service.ErrRideNotFound) {
		t.Errorf("expected ErrRideNotFound, got %v", err)
	}
}

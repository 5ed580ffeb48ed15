package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

func TestPendingRequestsFor_OrdersByCreationThenID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	seed := []struct {
		id      string
		created time.Time
		service string
		status  domain.RideRequestStatus
	}{
		{"req-c", base.Add(2 * time.Minute), sedanService, domain.RideRequestStatusPending},
		{"req-b", base, sedanService, domain.RideRequestStatusPending},
		{"req-a", base, sedanService, domain.RideRequestStatusPending},
		{"req-auto", base, autoService, domain.RideRequestStatusPending},
		{"req-taken", base.Add(-time.Hour), sedanService, domain.RideRequestStatusAccepted},
		{"req-gone", base.Add(-time.Hour), sedanService, domain.RideRequestStatusCancelled},
	}
	for _, s := range seed {
		f.uow.RideRequestRepo.AddRequest(domain.RideRequest{
			ID:                s.id,
			CustomerID:        customerID,
			VehicleServiceID:  s.service,
			PickupLocationID:  locationA,
			DropoffLocationID: locationB,
			RideDate:          f.rideDate,
			PickupTime:        at(9, 0),
			Status:            s.status,
			CreatedAt:         s.created,
		})
	}

	requests, err := f.matcher.PendingRequestsFor(ctx, driverID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := []string{"req-a", "req-b", "req-c"}
	if len(requests) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(requests))
	}
	for i, id := range want {
		if requests[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, requests[i].ID)
		}
	}
}

func TestPendingRequestsFor_UnmatchableDriversGetEmptyList(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(f *fixture)
	}{
		{
			name: "off duty",
			setup: func(f *fixture) {
				d, _ := f.uow.DriverRepo.GetDriver(driverID)
				d.IsAvailable = false
				f.uow.DriverRepo.AddDriver(d)
			},
		},
		{
			name: "no vehicle",
			setup: func(f *fixture) {
				f.addDriver(driverID, "")
			},
		},
		{
			name: "unverified",
			setup: func(f *fixture) {
				d, _ := f.uow.DriverRepo.GetDriver(driverID)
				d.VerificationStatus = domain.VerificationStatusRejected
				f.uow.DriverRepo.AddDriver(d)
			},
		},
		{
			name: "busy with an ongoing ride",
			setup: func(f *fixture) {
				f.addRide("ride-1", driverID, at(7, 0), domain.RideStatusOngoing)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.addRequest("req-1", at(9, 0))
			tc.setup(f)

			requests, err := f.matcher.PendingRequestsFor(context.Background(), driverID)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if requests == nil || len(requests) != 0 {
				t.Errorf("expected an empty list, got %v", requests)
			}
		})
	}
}

func TestPendingRequestsFor_FinishedRidesDoNotBlock(t *testing.T) {
	f := newFixture(t)
	f.addRequest("req-1", at(9, 0))
	f.addRide("ride-done", driverID, at(7, 0), domain.RideStatusCompleted)
	f.addRide("ride-cancelled", driverID, at(8, 0), domain.RideStatusCancelled)

	requests, err := f.matcher.PendingRequestsFor(context.Background(), driverID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(requests) != 1 {
		t.Errorf("expected 1 request, got %d", len(requests))
	}
}

func TestPendingRequestsFor_UnknownDriver(t *testing.T) {
	f := newFixture(t)

	_, err := f.matcher.PendingRequestsFor(context.Background(), "ghost")
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected NotFound, got %v", err)
	}

	_, err = f.matcher.PendingRequestsFor(context.Background(), "")
	if !errors.Is(err, service.ErrInvalidInput) {
		t.Errorf("expected InvalidInput, got %v", err)
	}
}

func TestPendingRequestsFor_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.uow.RideRequestRepo.ListPendingError = errors.New("connection refused")

	_, err := f.matcher.PendingRequestsFor(context.Background(), driverID)
	if !errors.Is(err, service.ErrUpstream) {
		t.Errorf("expected Upstream, got %v", err)
	}
}

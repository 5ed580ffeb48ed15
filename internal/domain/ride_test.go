package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := map[RideStatus][]RideStatus{
		RideStatusScheduled: {RideStatusOngoing, RideStatusCancelled},
		RideStatusOngoing:   {RideStatusCompleted, RideStatusCancelled},
	}
	all := []RideStatus{RideStatusScheduled, RideStatusOngoing, RideStatusCompleted, RideStatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestNewRideFromRequest(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	req := RideRequest{
		ID:                "req-1",
		CustomerID:        "cust-1",
		VehicleServiceID:  "svc-1",
		PickupLocationID:  "loc-a",
		DropoffLocationID: "loc-b",
		RideDate:          DateOf(now),
		PickupTime:        NewTimeOfDay(14, 0),
		Status:            RideRequestStatusPending,
	}

	ride := NewRideFromRequest("ride-1", req, "drv-1", now)

	assert.Equal(t, RideStatusScheduled, ride.Status)
	assert.Equal(t, "req-1", ride.RequestID)
	assert.Equal(t, "cust-1", ride.CustomerID)
	assert.Equal(t, "drv-1", ride.DriverID)
	assert.Equal(t, "svc-1", ride.VehicleServiceID)
	assert.Equal(t, req.PickupTime, ride.PickupTime)
	assert.True(t, ride.TotalCost.IsZero())
	assert.Nil(t, ride.DropoffTime)
	assert.Equal(t, now, ride.CreatedAt)
}

func TestRideSnapshots(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	base := Ride{ID: "ride-1", Status: RideStatusOngoing, TotalKm: decimal.NewFromInt(4)}

	completed := base.WithFare(FareBreakdown{
		TotalKm:       decimal.NewFromInt(6),
		TotalCost:     decimal.NewFromInt(100),
		DriverEarning: decimal.NewFromInt(80),
		SystemEarning: decimal.NewFromInt(20),
	}, NewTimeOfDay(9, 30), now)

	assert.Equal(t, RideStatusCompleted, completed.Status)
	require.NotNil(t, completed.DropoffTime)
	assert.Equal(t, NewTimeOfDay(9, 30), *completed.DropoffTime)
	assert.Equal(t, RideStatusOngoing, base.Status, "snapshots leave the original untouched")
	assert.True(t, base.TotalKm.Equal(decimal.NewFromInt(4)))

	cancelled := base.WithSettlement(Settlement{DriverPenalty: decimal.NewFromInt(50), SystemEarning: decimal.NewFromInt(120)}, now)
	assert.Equal(t, RideStatusCancelled, cancelled.Status)
	assert.True(t, cancelled.TotalKm.Equal(decimal.NewFromInt(4)), "trip fields survive cancellation")
	assert.True(t, cancelled.SystemEarning.Equal(decimal.NewFromInt(120)))
}

func TestCommissionSlabCovers(t *testing.T) {
	slab := CommissionSlab{FromKm: decimal.NewFromInt(10), ToKm: decimal.NewFromInt(20)}

	assert.True(t, slab.Covers(decimal.NewFromInt(10)))
	assert.True(t, slab.Covers(decimal.NewFromInt(20)))
	assert.False(t, slab.Covers(decimal.RequireFromString("9.99")))
	assert.False(t, slab.Covers(decimal.RequireFromString("20.01")))
}

func TestCallerCan(t *testing.T) {
	assert.True(t, Caller{Role: RoleDriver}.Can(CapAcceptRequest))
	assert.False(t, Caller{Role: RoleCustomer}.Can(CapAcceptRequest))
	assert.False(t, Caller{Role: RoleDriver}.Can(CapVerifyDriver))
	assert.True(t, Caller{Role: RoleAdmin}.Can(CapVerifyDriver))
	assert.False(t, Caller{Role: "GUEST"}.Can(CapViewRide))
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RideStatus represents the current status of a ride.
type RideStatus string

const (
	RideStatusScheduled RideStatus = "SCHEDULED"
	RideStatusOngoing   RideStatus = "ONGOING"
	RideStatusCompleted RideStatus = "COMPLETED"
	RideStatusCancelled RideStatus = "CANCELLED"
)

// ActiveRideStatuses are the statuses that occupy a driver.
var ActiveRideStatuses = []RideStatus{RideStatusScheduled, RideStatusOngoing}

// IsActive reports whether the status occupies the driver.
func (s RideStatus) IsActive() bool {
	return s == RideStatusScheduled || s == RideStatusOngoing
}

// rideTransitions is the ride state flow as code.
var rideTransitions = map[RideStatus][]RideStatus{
	RideStatusScheduled: {RideStatusOngoing, RideStatusCancelled},
	RideStatusOngoing:   {RideStatusCompleted, RideStatusCancelled},
}

// CanTransition reports whether a ride may move from one status to another.
func CanTransition(from, to RideStatus) bool {
	for _, next := range rideTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Ride is an accepted transport engagement between one customer and one driver.
type Ride struct {
	ID                string
	RequestID         string
	CustomerID        string
	DriverID          string
	VehicleServiceID  string
	PickupLocationID  string
	DropoffLocationID string
	RideDate          time.Time
	PickupTime        TimeOfDay
	DropoffTime       *TimeOfDay
	Status            RideStatus

	TotalKm              decimal.Decimal
	TotalCost            decimal.Decimal
	CommissionPercentage decimal.Decimal
	DriverEarning        decimal.Decimal
	SystemEarning        decimal.Decimal

	CancellationCharge        decimal.Decimal
	CancellationDriverEarning decimal.Decimal
	CancellationSystemEarning decimal.Decimal
	DriverPenalty             decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRideFromRequest builds a SCHEDULED ride for driverID out of an accepted request.
// Money fields start at zero.
func NewRideFromRequest(id string, req RideRequest, driverID string, now time.Time) Ride {
	return Ride{
		ID:                id,
		RequestID:         req.ID,
		CustomerID:        req.CustomerID,
		DriverID:          driverID,
		VehicleServiceID:  req.VehicleServiceID,
		PickupLocationID:  req.PickupLocationID,
		DropoffLocationID: req.DropoffLocationID,
		RideDate:          req.RideDate,
		PickupTime:        req.PickupTime,
		Status:            RideStatusScheduled,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// WithStatus returns a new snapshot carrying the given status.
func (r Ride) WithStatus(status RideStatus, now time.Time) Ride {
	r.Status = status
	r.UpdatedAt = now
	return r
}

// WithFare returns a COMPLETED snapshot carrying the given fare breakdown.
func (r Ride) WithFare(fare FareBreakdown, dropoff TimeOfDay, now time.Time) Ride {
	r.Status = RideStatusCompleted
	r.TotalKm = fare.TotalKm
	r.TotalCost = fare.TotalCost
	r.CommissionPercentage = fare.CommissionPercentage
	r.DriverEarning = fare.DriverEarning
	r.SystemEarning = fare.SystemEarning
	r.DropoffTime = &dropoff
	r.UpdatedAt = now
	return r
}

// WithSettlement returns a CANCELLED snapshot carrying the given settlement.
// Trip fields (distance, cost, commission) are kept from the prior snapshot.
func (r Ride) WithSettlement(s Settlement, now time.Time) Ride {
	r.Status = RideStatusCancelled
	r.CancellationCharge = s.CancellationCharge
	r.CancellationDriverEarning = s.CancellationDriverEarning
	r.CancellationSystemEarning = s.CancellationSystemEarning
	r.DriverPenalty = s.DriverPenalty
	r.DriverEarning = s.DriverEarning
	r.SystemEarning = s.SystemEarning
	r.UpdatedAt = now
	return r
}

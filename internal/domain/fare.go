package domain

import "github.com/shopspring/decimal"

// VehicleService is a service class (e.g. sedan, auto) with its tariff.
type VehicleService struct {
	ID        string
	Name      string
	BaseFare  decimal.Decimal
	PerKmRate decimal.Decimal
}

// CommissionSlab maps an inclusive distance range to the platform commission.
type CommissionSlab struct {
	ID                   string
	FromKm               decimal.Decimal
	ToKm                 decimal.Decimal
	CommissionPercentage decimal.Decimal
}

// Covers reports whether km lies within the slab, both ends inclusive.
func (s CommissionSlab) Covers(km decimal.Decimal) bool {
	return km.GreaterThanOrEqual(s.FromKm) && km.LessThanOrEqual(s.ToKm)
}

// FareBreakdown is the fare for a trip split between driver and platform.
type FareBreakdown struct {
	TotalKm              decimal.Decimal
	TotalCost            decimal.Decimal
	CommissionPercentage decimal.Decimal
	DriverEarning        decimal.Decimal
	SystemEarning        decimal.Decimal
}

// CancellationDetails are the raw amounts produced by the cancellation policy.
type CancellationDetails struct {
	CancellationCharge decimal.Decimal
	DriverEarning      decimal.Decimal
	SystemEarning      decimal.Decimal
	DriverPenalty      decimal.Decimal
}

// Settlement is the monetary outcome of a cancelled ride.
type Settlement struct {
	CancellationCharge        decimal.Decimal
	CancellationDriverEarning decimal.Decimal
	CancellationSystemEarning decimal.Decimal
	DriverPenalty             decimal.Decimal
	DriverEarning             decimal.Decimal
	SystemEarning             decimal.Decimal
}

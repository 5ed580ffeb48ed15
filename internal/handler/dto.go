package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
)

// RideRequestResponse is the HTTP representation of a ride request.
type RideRequestResponse struct {
	ID                string           `json:"id"`
	CustomerID        string           `json:"customer_id"`
	VehicleServiceID  string           `json:"vehicle_service_id"`
	PickupLocationID  string           `json:"pickup_location_id"`
	DropoffLocationID string           `json:"dropoff_location_id"`
	RideDate          string           `json:"ride_date"`
	PickupTime        domain.TimeOfDay `json:"pickup_time"`
	Status            string           `json:"status"`
	CreatedAt         string           `json:"created_at"`
}

func toRideRequestResponse(r domain.RideRequest) RideRequestResponse {
	return RideRequestResponse{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		VehicleServiceID:  r.VehicleServiceID,
		PickupLocationID:  r.PickupLocationID,
		DropoffLocationID: r.DropoffLocationID,
		RideDate:          domain.FormatDate(r.RideDate),
		PickupTime:        r.PickupTime,
		Status:            string(r.Status),
		CreatedAt:         r.CreatedAt.Format(time.RFC3339),
	}
}

func toRideRequestResponses(reqs []domain.RideRequest) []RideRequestResponse {
	out := make([]RideRequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = toRideRequestResponse(r)
	}
	return out
}

// RideResponse is the HTTP representation of a ride.
type RideResponse struct {
	ID                        string            `json:"id"`
	RequestID                 string            `json:"request_id"`
	CustomerID                string            `json:"customer_id"`
	DriverID                  string            `json:"driver_id"`
	VehicleServiceID          string            `json:"vehicle_service_id"`
	PickupLocationID          string            `json:"pickup_location_id"`
	DropoffLocationID         string            `json:"dropoff_location_id"`
	RideDate                  string            `json:"ride_date"`
	PickupTime                domain.TimeOfDay  `json:"pickup_time"`
	DropoffTime               *domain.TimeOfDay `json:"dropoff_time,omitempty"`
	Status                    string            `json:"status"`
	TotalKm                   string            `json:"total_km"`
	TotalCost                 string            `json:"total_cost"`
	CommissionPercentage      string            `json:"commission_percentage"`
	DriverEarning             string            `json:"driver_earning"`
	SystemEarning             string            `json:"system_earning"`
	CancellationCharge        string            `json:"cancellation_charge"`
	CancellationDriverEarning string            `json:"cancellation_driver_earning"`
	CancellationSystemEarning string            `json:"cancellation_system_earning"`
	DriverPenalty             string            `json:"driver_penalty"`
	UpdatedAt                 string            `json:"updated_at"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toRideResponse(r domain.Ride) RideResponse {
	return RideResponse{
		ID:                        r.ID,
		RequestID:                 r.RequestID,
		CustomerID:                r.CustomerID,
		DriverID:                  r.DriverID,
		VehicleServiceID:          r.VehicleServiceID,
		PickupLocationID:          r.PickupLocationID,
		DropoffLocationID:         r.DropoffLocationID,
		RideDate:                  domain.FormatDate(r.RideDate),
		PickupTime:                r.PickupTime,
		DropoffTime:               r.DropoffTime,
		Status:                    string(r.Status),
		TotalKm:                   money(r.TotalKm),
		TotalCost:                 money(r.TotalCost),
		CommissionPercentage:      money(r.CommissionPercentage),
		DriverEarning:             money(r.DriverEarning),
		SystemEarning:             money(r.SystemEarning),
		CancellationCharge:        money(r.CancellationCharge),
		CancellationDriverEarning: money(r.CancellationDriverEarning),
		CancellationSystemEarning: money(r.CancellationSystemEarning),
		DriverPenalty:             money(r.DriverPenalty),
		UpdatedAt:                 r.UpdatedAt.Format(time.RFC3339),
	}
}

func toRideResponses(rides []domain.Ride) []RideResponse {
	out := make([]RideResponse, len(rides))
	for i, r := range rides {
		out[i] = toRideResponse(r)
	}
	return out
}

// FareResponse is the HTTP representation of a fare breakdown.
type FareResponse struct {
	TotalKm              string `json:"total_km"`
	TotalCost            string `json:"total_cost"`
	CommissionPercentage string `json:"commission_percentage"`
	DriverEarning        string `json:"driver_earning"`
	SystemEarning        string `json:"system_earning"`
}

func toFareResponse(f domain.FareBreakdown) FareResponse {
	return FareResponse{
		TotalKm:              money(f.TotalKm),
		TotalCost:            money(f.TotalCost),
		CommissionPercentage: money(f.CommissionPercentage),
		DriverEarning:        money(f.DriverEarning),
		SystemEarning:        money(f.SystemEarning),
	}
}

// EarningsResponse is the HTTP representation of an earnings report.
type EarningsResponse struct {
	DriverID  string `json:"driver_id,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
	Total     string `json:"total"`
	RideCount int    `json:"ride_count"`
}

package domain

import "time"

// RideRequestStatus represents the current status of a ride request.
type RideRequestStatus string

const (
	RideRequestStatusPending   RideRequestStatus = "PENDING"
	RideRequestStatusAccepted  RideRequestStatus = "ACCEPTED"
	RideRequestStatusCancelled RideRequestStatus = "CANCELLED"
	RideRequestStatusExpired   RideRequestStatus = "EXPIRED"
)

// RideRequest is a customer's ask for transport that has not been matched yet.
type RideRequest struct {
	ID                string
	CustomerID        string
	VehicleServiceID  string
	PickupLocationID  string
	DropoffLocationID string
	RideDate          time.Time
	PickupTime        TimeOfDay
	Status            RideRequestStatus
	CreatedAt         time.Time
}

// WithStatus returns a copy of the request carrying the given status.
func (r RideRequest) WithStatus(status RideRequestStatus) RideRequest {
	r.Status = status
	return r
}

// IsPending reports whether the request can still be accepted.
func (r RideRequest) IsPending() bool {
	return r.Status == RideRequestStatusPending
}

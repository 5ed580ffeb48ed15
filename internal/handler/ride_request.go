package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/middleware"
	"dispatch/internal/service"
)

// RideRequestHandler handles HTTP requests for ride requests.
type RideRequestHandler struct {
	requests *service.RideRequestService
}

// NewRideRequestHandler creates a new RideRequestHandler.
func NewRideRequestHandler(requests *service.RideRequestService) *RideRequestHandler {
	return &RideRequestHandler{requests: requests}
}

// CreateRideRequestBody is the HTTP request body for requesting a ride.
type CreateRideRequestBody struct {
	CustomerID        string           `json:"customer_id,omitempty"` // admins only
	VehicleServiceID  string           `json:"vehicle_service_id" binding:"required"`
	PickupLocationID  string           `json:"pickup_location_id" binding:"required"`
	DropoffLocationID string           `json:"dropoff_location_id" binding:"required"`
	RideDate          string           `json:"ride_date" binding:"required"`
	PickupTime        domain.TimeOfDay `json:"pickup_time"`
}

// Create handles POST /v1/ride-requests
func (h *RideRequestHandler) Create(c *gin.Context) {
	var body CreateRideRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	rideDate, err := domain.ParseDate(body.RideDate)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	caller, _ := middleware.CallerFrom(c)
	customerID := caller.UserID
	if caller.Role == domain.RoleAdmin && body.CustomerID != "" {
		customerID = body.CustomerID
	}

	req, err := h.requests.Create(c.Request.Context(), service.CreateRideRequest{
		CustomerID:        customerID,
		VehicleServiceID:  body.VehicleServiceID,
		PickupLocationID:  body.PickupLocationID,
		DropoffLocationID: body.DropoffLocationID,
		RideDate:          rideDate,
		PickupTime:        body.PickupTime,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideRequestResponse(req))
}

// Get handles GET /v1/ride-requests/:id
func (h *RideRequestHandler) Get(c *gin.Context) {
	req, err := h.requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponse(req))
}

// Cancel handles POST /v1/ride-requests/:id/cancel
func (h *RideRequestHandler) Cancel(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)
	ownerID := caller.UserID
	if caller.Role == domain.RoleAdmin {
		ownerID = ""
	}

	req, err := h.requests.Cancel(c.Request.Context(), c.Param("id"), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponse(req))
}

// Expire handles POST /v1/ride-requests/:id/expire
func (h *RideRequestHandler) Expire(c *gin.Context) {
	req, err := h.requests.Expire(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponse(req))
}

// Quote handles GET /v1/ride-requests/quote?pickup=&dropoff=&service=
func (h *RideRequestHandler) Quote(c *gin.Context) {
	fare, err := h.requests.Quote(c.Request.Context(), c.Query("pickup"), c.Query("dropoff"), c.Query("service"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toFareResponse(fare))
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/middleware"
	"dispatch/internal/service"
)

// RideHandler handles HTTP requests for rides.
type RideHandler struct {
	lifecycle *service.RideLifecycle
	reports   *service.ReportService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(lifecycle *service.RideLifecycle, reports *service.ReportService) *RideHandler {
	return &RideHandler{
		lifecycle: lifecycle,
		reports:   reports,
	}
}

// CancelRideRequest is the HTTP request body an admin may send to settle a
// cancellation with explicit amounts. Other callers' cancellations are
// priced by the cancellation policy and any body is ignored.
type CancelRideRequest struct {
	CancellationCharge decimal.Decimal `json:"cancellation_charge"`
	DriverEarning      decimal.Decimal `json:"driver_earning"`
	SystemEarning      decimal.Decimal `json:"system_earning"`
	DriverPenalty      decimal.Decimal `json:"driver_penalty"`
}

// CompleteRideRequest is the HTTP request body for completing a ride.
type CompleteRideRequest struct {
	TotalKm decimal.Decimal `json:"total_km"`
}

// GetRide handles GET /v1/rides/:id
func (h *RideHandler) GetRide(c *gin.Context) {
	ride, err := h.reports.Ride(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// StartRide handles POST /v1/rides/:id/start
func (h *RideHandler) StartRide(c *gin.Context) {
	ride, err := h.lifecycle.Start(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CancelRide handles POST /v1/rides/:id/cancel
func (h *RideHandler) CancelRide(c *gin.Context) {
	caller, _ := middleware.CallerFrom(c)

	var (
		ride domain.Ride
		err  error
	)
	if caller.IsAdmin() && c.Request.ContentLength != 0 {
		var req CancelRideRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "invalid request body")
			return
		}
		ride, err = h.lifecycle.Cancel(c.Request.Context(), c.Param("id"), domain.CancellationDetails{
			CancellationCharge: req.CancellationCharge,
			DriverEarning:      req.DriverEarning,
			SystemEarning:      req.SystemEarning,
			DriverPenalty:      req.DriverPenalty,
		})
	} else {
		ride, err = h.lifecycle.CancelAs(c.Request.Context(), c.Param("id"), caller.Role)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// CompleteRide handles POST /v1/rides/:id/complete
func (h *RideHandler) CompleteRide(c *gin.Context) {
	var req CompleteRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	ride, err := h.lifecycle.Complete(c.Request.Context(), c.Param("id"), req.TotalKm)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponse(ride))
}

// RidesForUser handles GET /v1/users/:id/rides
func (h *RideHandler) RidesForUser(c *gin.Context) {
	rides, err := h.reports.RidesForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideResponses(rides))
}

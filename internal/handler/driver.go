package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	drivers   *service.DriverService
	matcher   *service.RideMatcher
	lifecycle *service.RideLifecycle
	conflicts *service.ConflictChecker
	reports   *service.ReportService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(
	drivers *service.DriverService,
	matcher *service.RideMatcher,
	lifecycle *service.RideLifecycle,
	conflicts *service.ConflictChecker,
	reports *service.ReportService,
) *DriverHandler {
	return &DriverHandler{
		drivers:   drivers,
		matcher:   matcher,
		lifecycle: lifecycle,
		conflicts: conflicts,
		reports:   reports,
	}
}

// VerifyDriverRequest is the HTTP request body for a licence review outcome.
type VerifyDriverRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment,omitempty"`
}

// AttachVehicleRequest is the HTTP request body for registering a vehicle.
type AttachVehicleRequest struct {
	BrandModelID       string `json:"brand_model_id" binding:"required"`
	RegistrationNumber string `json:"registration_number" binding:"required"`
	Year               int    `json:"year" binding:"required"`
}

// SetDutyRequest is the HTTP request body for going on or off duty.
type SetDutyRequest struct {
	OnDuty *bool `json:"on_duty" binding:"required"`
}

// DriverResponse is the HTTP response for driver data.
type DriverResponse struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	VerificationStatus  string           `json:"verification_status"`
	VerificationComment string           `json:"verification_comment,omitempty"`
	IsAvailable         bool             `json:"is_available"`
	Vehicle             *VehicleResponse `json:"vehicle,omitempty"`
}

// VehicleResponse is the HTTP response for vehicle data.
type VehicleResponse struct {
	ID                 string `json:"id"`
	BrandModelID       string `json:"brand_model_id"`
	RegistrationNumber string `json:"registration_number"`
	Year               int    `json:"year"`
}

func toVehicleResponse(v *domain.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}
	return &VehicleResponse{
		ID:                 v.ID,
		BrandModelID:       v.BrandModelID,
		RegistrationNumber: v.RegistrationNumber,
		Year:               v.Year,
	}
}

// PendingRequests handles GET /v1/drivers/:id/ride-requests
func (h *DriverHandler) PendingRequests(c *gin.Context) {
	requests, err := h.matcher.PendingRequestsFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toRideRequestResponses(requests))
}

// AcceptRequest handles POST /v1/drivers/:id/ride-requests/:requestId/accept
func (h *DriverHandler) AcceptRequest(c *gin.Context) {
	ride, err := h.lifecycle.AcceptRequest(c.Request.Context(), c.Param("id"), c.Param("requestId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRideResponse(ride))
}

// Conflicts handles GET /v1/drivers/:id/conflicts?date=&time=
func (h *DriverHandler) Conflicts(c *gin.Context) {
	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	pickup, err := domain.ParseTimeOfDay(c.Query("time"))
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	conflict, err := h.conflicts.HasConflict(c.Request.Context(), c.Param("id"), date, pickup)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"conflict": conflict})
}

// Availability handles GET /v1/drivers/:id/availability
func (h *DriverHandler) Availability(c *gin.Context) {
	available, err := h.drivers.Available(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"available": available})
}

// Verify handles POST /v1/drivers/:id/verify
func (h *DriverHandler) Verify(c *gin.Context) {
	var req VerifyDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	driver, err := h.drivers.Verify(c.Request.Context(), c.Param("id"), domain.VerificationStatus(req.Status), req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DriverResponse{
		ID:                  driver.ID,
		UserID:              driver.UserID,
		VerificationStatus:  string(driver.VerificationStatus),
		VerificationComment: driver.VerificationComment,
		IsAvailable:         driver.IsAvailable,
		Vehicle:             toVehicleResponse(driver.Vehicle),
	})
}

// AttachVehicle handles POST /v1/drivers/:id/vehicle
func (h *DriverHandler) AttachVehicle(c *gin.Context) {
	var req AttachVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	vehicle, err := h.drivers.AttachVehicle(c.Request.Context(), c.Param("id"), service.AttachVehicleRequest{
		BrandModelID:       req.BrandModelID,
		RegistrationNumber: req.RegistrationNumber,
		Year:               req.Year,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toVehicleResponse(vehicle))
}

// DetachVehicle handles DELETE /v1/drivers/:id/vehicle
func (h *DriverHandler) DetachVehicle(c *gin.Context) {
	if err := h.drivers.DetachVehicle(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetDuty handles POST /v1/drivers/:id/duty
func (h *DriverHandler) SetDuty(c *gin.Context) {
	var req SetDutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.drivers.SetDuty(c.Request.Context(), c.Param("id"), *req.OnDuty); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"on_duty": *req.OnDuty})
}

// Earnings handles GET /v1/drivers/:id/earnings?from=&to=
func (h *DriverHandler) Earnings(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	report, err := h.reports.DriverEarnings(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toEarningsResponse(report))
}

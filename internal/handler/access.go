package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/middleware"
	"dispatch/internal/service"
)

// Access scopes routes to the records the caller owns. Admins pass every
// check. It runs after middleware.Require, which has already checked the
// caller's role.
type Access struct {
	drivers  *service.DriverService
	reports  *service.ReportService
	requests *service.RideRequestService
}

// NewAccess creates a new Access.
func NewAccess(drivers *service.DriverService, reports *service.ReportService, requests *service.RideRequestService) *Access {
	return &Access{drivers: drivers, reports: reports, requests: requests}
}

// OwnDriver admits a driver only to their own /drivers/:id routes.
func (a *Access) OwnDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		if caller.IsAdmin() {
			c.Next()
			return
		}

		ok, err := a.actsForDriver(c, caller, c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if !ok {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RideParty admits only the customer and the driver of the ride :id.
func (a *Access) RideParty() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		if caller.IsAdmin() {
			c.Next()
			return
		}

		ride, err := a.reports.Ride(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}

		ok := caller.Role == domain.RoleCustomer && ride.CustomerID == caller.UserID
		if !ok && caller.Role == domain.RoleDriver {
			if ok, err = a.actsForDriver(c, caller, ride.DriverID); err != nil {
				abortWithError(c, err)
				return
			}
		}
		if !ok {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// RequestViewer hides a ride request from customers other than its author.
// Drivers see requests anyway when matching.
func (a *Access) RequestViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		if caller.Role != domain.RoleCustomer {
			c.Next()
			return
		}

		req, err := a.requests.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		if req.CustomerID != caller.UserID {
			abortForbidden(c)
			return
		}
		c.Next()
	}
}

// Self admits callers to /users/:id routes for their own user id, or for the
// driver record they own.
func (a *Access) Self() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CallerFrom(c)
		id := c.Param("id")
		if caller.IsAdmin() || caller.UserID == id {
			c.Next()
			return
		}

		if caller.Role == domain.RoleDriver {
			ok, err := a.actsForDriver(c, caller, id)
			if err != nil && !errors.Is(err, service.ErrNotFound) {
				abortWithError(c, err)
				return
			}
			if ok {
				c.Next()
				return
			}
		}
		abortForbidden(c)
	}
}

// actsForDriver reports whether the caller is the user behind driverID.
func (a *Access) actsForDriver(c *gin.Context, caller domain.Caller, driverID string) (bool, error) {
	if caller.Role != domain.RoleDriver {
		return false, nil
	}
	driver, err := a.drivers.Driver(c.Request.Context(), driverID)
	if err != nil {
		return false, err
	}
	return driver.UserID == caller.UserID, nil
}

func abortWithError(c *gin.Context, err error) {
	respondError(c, err)
	c.Abort()
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: "not permitted for this caller"})
}

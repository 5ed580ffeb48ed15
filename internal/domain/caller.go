package domain

// Role is the role of an authenticated caller.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleDriver   Role = "DRIVER"
	RoleAdmin    Role = "ADMIN"
)

// Capability is a single permission checked at the HTTP boundary.
type Capability string

const (
	CapRequestRide   Capability = "ride_request:create"
	CapCancelRequest Capability = "ride_request:cancel"
	CapExpireRequest Capability = "ride_request:expire"
	CapViewRequests  Capability = "ride_request:list"
	CapAcceptRequest Capability = "ride_request:accept"
	CapOperateRide   Capability = "ride:operate"
	CapCancelRide    Capability = "ride:cancel"
	CapViewRide      Capability = "ride:view"
	CapManageVehicle Capability = "driver:vehicle"
	CapVerifyDriver  Capability = "driver:verify"
	CapViewEarnings  Capability = "report:driver"
	CapViewPlatform  Capability = "report:platform"
	CapSetDriverDuty Capability = "driver:duty"
	CapGiveFeedback  Capability = "feedback:create"
	CapManageCatalog Capability = "catalog:manage"
)

var roleCapabilities = map[Role][]Capability{
	RoleCustomer: {CapRequestRide, CapCancelRequest, CapCancelRide, CapViewRide, CapGiveFeedback},
	RoleDriver: {
		CapViewRequests, CapAcceptRequest, CapOperateRide, CapCancelRide,
		CapViewRide, CapManageVehicle, CapViewEarnings, CapSetDriverDuty, CapGiveFeedback,
	},
	RoleAdmin: {
		CapRequestRide, CapCancelRequest, CapExpireRequest, CapViewRequests,
		CapAcceptRequest, CapOperateRide, CapCancelRide, CapViewRide, CapManageVehicle,
		CapVerifyDriver, CapViewEarnings, CapViewPlatform, CapSetDriverDuty, CapManageCatalog,
	},
}

// Caller is an already-authenticated principal forwarded by the gateway.
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin reports whether the caller acts for the platform rather than for
// themselves.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Can reports whether the caller holds the capability.
func (c Caller) Can(capability Capability) bool {
	for _, granted := range roleCapabilities[c.Role] {
		if granted == capability {
			return true
		}
	}
	return false
}

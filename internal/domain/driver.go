package domain

// VerificationStatus represents the review state of a driver's licence documents.
type VerificationStatus string

const (
	VerificationStatusIncomplete VerificationStatus = "INCOMPLETE"
	VerificationStatusPending    VerificationStatus = "PENDING"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusRejected   VerificationStatus = "REJECTED"
)

// Driver represents a driver in the system.
//
// IsAvailable is the stored duty flag. Whether a driver can take new work also
// depends on their active rides; see service.DriverService.Available.
type Driver struct {
	ID                  string
	UserID              string
	LicenceNumber       string
	LicencePhoto        string
	VerificationStatus  VerificationStatus
	VerificationComment string
	IsAvailable         bool
	Vehicle             *Vehicle
}

// HasDocuments reports whether licence details were uploaded.
func (d Driver) HasDocuments() bool {
	return d.LicenceNumber != "" && d.VerificationStatus != VerificationStatusIncomplete
}

// Vehicle is the single vehicle a driver may register.
type Vehicle struct {
	ID                 string
	DriverID           string
	BrandModelID       string
	RegistrationNumber string
	Year               int
}

// BrandModel ties a vehicle make/model to the service class it can run.
type BrandModel struct {
	ID               string
	Brand            string
	Model            string
	MinYear          int
	VehicleServiceID string
}

// Location is a named pickup/dropoff point.
type Location struct {
	ID       string
	Name     string
	IsActive bool
}

package repository

import "context"

// Store bundles the repositories that take part in one unit of work.
type Store interface {
	Rides() RideRepository
	RideRequests() RideRequestRepository
	Drivers() DriverRepository
	Catalog() CatalogRepository
	Feedback() FeedbackRepository
}

// UnitOfWork hands out repositories and runs transactional work.
type UnitOfWork interface {
	Store

	// WithinTx runs fn with repositories bound to one serializable
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}

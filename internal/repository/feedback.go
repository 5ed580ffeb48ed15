package repository

import (
	"context"

	"dispatch/internal/domain"
)

// FeedbackRepository defines the persistence operations for ride feedback.
type FeedbackRepository interface {
	// Create stores feedback. It returns ErrDuplicate when the author
	// already rated the recipient for this ride.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// Exists reports whether fromUserID already rated toUserID for the ride.
	Exists(ctx context.Context, fromUserID, toUserID, rideID string) (bool, error)

	// SummaryFor returns the average rating and feedback count received by userID.
	SummaryFor(ctx context.Context, userID string) (domain.RatingSummary, error)
}

package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// FeedbackRepository is a PostgreSQL implementation of repository.FeedbackRepository.
// The feedback table carries UNIQUE (ride_id, from_user_id, to_user_id).
type FeedbackRepository struct {
	q Querier
}

var _ repository.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new PostgreSQL feedback repository.
func NewFeedbackRepository(db *sql.DB) *FeedbackRepository {
	return &FeedbackRepository{q: db}
}

// Create stores feedback.
func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (id, ride_id, from_user_id, to_user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.ExecContext(ctx, query,
		f.ID,
		f.RideID,
		f.FromUserID,
		f.ToUserID,
		f.Rating,
		f.Comment,
		f.CreatedAt,
	)
	return translateError(err)
}

// Exists reports whether the author already rated the recipient for the ride.
func (r *FeedbackRepository) Exists(ctx context.Context, fromUserID, toUserID, rideID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM feedback
			WHERE from_user_id = $1 AND to_user_id = $2 AND ride_id = $3
		)
	`

	var exists bool
	if err := r.q.QueryRowContext(ctx, query, fromUserID, toUserID, rideID).Scan(&exists); err != nil {
		return false, translateError(err)
	}
	return exists, nil
}

// SummaryFor returns the average rating, rounded to two places, and the
// number of ratings userID has received.
func (r *FeedbackRepository) SummaryFor(ctx context.Context, userID string) (domain.RatingSummary, error) {
	query := `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 2), 0), COUNT(*)
		FROM feedback
		WHERE to_user_id = $1
	`

	summary := domain.RatingSummary{UserID: userID}
	if err := r.q.QueryRowContext(ctx, query, userID).Scan(&summary.Average, &summary.Count); err != nil {
		return domain.RatingSummary{}, translateError(err)
	}
	return summary, nil
}

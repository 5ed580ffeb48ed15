package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ratings run from MinRating to MaxRating stars.
const (
	MinRating = 1
	MaxRating = 5
)

// Feedback is the rating one party of a completed ride leaves for the other.
type Feedback struct {
	ID         string
	RideID     string
	FromUserID string
	ToUserID   string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// RatingSummary totals the feedback a user has received.
type RatingSummary struct {
	UserID  string
	Average decimal.Decimal
	Count   int
}

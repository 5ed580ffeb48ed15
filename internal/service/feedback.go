package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

const maxFeedbackComment = 500

// FeedbackService records ratings between the customer and driver of a
// completed ride.
type FeedbackService struct {
	uow      repository.UnitOfWork
	notifier *NotificationService
	timeout  time.Duration
	log      logrus.FieldLogger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(uow repository.UnitOfWork, notifier *NotificationService, timeout time.Duration, log logrus.FieldLogger) *FeedbackService {
	return &FeedbackService{
		uow:      uow,
		notifier: notifier,
		timeout:  timeout,
		log:      log,
	}
}

// GiveFeedbackRequest contains the parameters for rating a ride.
type GiveFeedbackRequest struct {
	RideID  string
	Rating  int
	Comment string
}

// Give stores the caller's rating of the other party of a completed ride. A
// customer rates the driver and a driver rates the customer, once per ride.
func (s *FeedbackService) Give(ctx context.Context, caller domain.Caller, in GiveFeedbackRequest) (domain.Feedback, error) {
	if in.RideID == "" || caller.UserID == "" {
		return domain.Feedback{}, ErrInvalidID
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		return domain.Feedback{}, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if len(comment) > maxFeedbackComment {
		return domain.Feedback{}, ErrCommentTooLong
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var feedback domain.Feedback
	err := s.uow.WithinTx(ctx, func(tx repository.Store) error {
		ride, err := tx.Rides().GetByID(ctx, in.RideID)
		if err != nil {
			return classify(err, ErrRideNotFound)
		}
		if ride.Status != domain.RideStatusCompleted {
			return ErrRideNotCompleted
		}

		recipient, err := recipientOf(ctx, tx.Drivers(), *ride, caller)
		if err != nil {
			return err
		}

		given, err := tx.Feedback().Exists(ctx, caller.UserID, recipient, ride.ID)
		if err != nil {
			return classify(err, nil)
		}
		if given {
			return ErrFeedbackAlreadyGiven
		}

		feedback = domain.Feedback{
			ID:         uuid.NewString(),
			RideID:     ride.ID,
			FromUserID: caller.UserID,
			ToUserID:   recipient,
			Rating:     in.Rating,
			Comment:    comment,
			CreatedAt:  time.Now().UTC(),
		}
		if err := tx.Feedback().Create(ctx, &feedback); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrFeedbackAlreadyGiven
			}
			return classify(err, nil)
		}
		return nil
	})
	if err != nil {
		return domain.Feedback{}, classify(err, nil)
	}

	s.log.WithFields(logrus.Fields{
		"ride_id": feedback.RideID,
		"from":    feedback.FromUserID,
		"to":      feedback.ToUserID,
		"rating":  feedback.Rating,
	}).Info("feedback recorded")
	s.notifier.NotifyFeedbackReceived(ctx, feedback)

	return feedback, nil
}

// Rating returns the average rating userID has received.
func (s *FeedbackService) Rating(ctx context.Context, userID string) (domain.RatingSummary, error) {
	if userID == "" {
		return domain.RatingSummary{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.uow.Feedback().SummaryFor(ctx, userID)
	if err != nil {
		return domain.RatingSummary{}, classify(err, nil)
	}
	return summary, nil
}

// recipientOf returns the user the caller rates: the driver's user for the
// ride's customer, and the customer for the ride's driver.
func recipientOf(ctx context.Context, drivers repository.DriverRepository, ride domain.Ride, caller domain.Caller) (string, error) {
	driver, err := drivers.GetByID(ctx, ride.DriverID)
	if err != nil {
		return "", classify(err, ErrDriverNotFound)
	}

	switch {
	case caller.Role == domain.RoleCustomer && caller.UserID == ride.CustomerID:
		return driver.UserID, nil
	case caller.Role == domain.RoleDriver && caller.UserID == driver.UserID:
		return ride.CustomerID, nil
	default:
		return "", ErrNotRideParty
	}
}

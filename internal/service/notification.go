package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dispatch/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationRequestCreated   NotificationType = "REQUEST_CREATED"
	NotificationRequestCancelled NotificationType = "REQUEST_CANCELLED"
	NotificationRequestExpired   NotificationType = "REQUEST_EXPIRED"
	NotificationRideAccepted     NotificationType = "RIDE_ACCEPTED"
	NotificationRideStarted      NotificationType = "RIDE_STARTED"
	NotificationRideCompleted    NotificationType = "RIDE_COMPLETED"
	NotificationRideCancelled    NotificationType = "RIDE_CANCELLED"
	NotificationFeedbackReceived NotificationType = "FEEDBACK_RECEIVED"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string // customer or driver ID
	Title       string
	Message     string
	Data        logrus.Fields
	CreatedAt   time.Time
}

// NotificationService emits ride lifecycle events. Delivery is a structured
// log entry per recipient.
type NotificationService struct {
	log logrus.FieldLogger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(log logrus.FieldLogger) *NotificationService {
	return &NotificationService{log: log}
}

// NotifyRequestCreated tells the customer their request is waiting for a driver.
func (s *NotificationService) NotifyRequestCreated(ctx context.Context, req domain.RideRequest) {
	s.send(ctx, Notification{
		Type:        NotificationRequestCreated,
		RecipientID: req.CustomerID,
		Title:       "Ride Requested",
		Message:     fmt.Sprintf("Looking for a driver for %s at %s", domain.FormatDate(req.RideDate), req.PickupTime),
		Data: logrus.Fields{
			"request_id":         req.ID,
			"vehicle_service_id": req.VehicleServiceID,
		},
	})
}

// NotifyRequestClosed tells the customer their request will not be served.
func (s *NotificationService) NotifyRequestClosed(ctx context.Context, req domain.RideRequest) {
	n := Notification{
		Type:        NotificationRequestCancelled,
		RecipientID: req.CustomerID,
		Title:       "Ride Request Cancelled",
		Message:     "Your ride request was cancelled",
		Data:        logrus.Fields{"request_id": req.ID},
	}
	if req.Status == domain.RideRequestStatusExpired {
		n.Type = NotificationRequestExpired
		n.Title = "Ride Request Expired"
		n.Message = "No driver accepted your ride request in time"
	}
	s.send(ctx, n)
}

// NotifyRideAccepted tells the customer a driver took their request.
func (s *NotificationService) NotifyRideAccepted(ctx context.Context, ride domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRideAccepted,
		RecipientID: ride.CustomerID,
		Title:       "Driver Assigned",
		Message:     fmt.Sprintf("A driver will pick you up on %s at %s", domain.FormatDate(ride.RideDate), ride.PickupTime),
		Data: logrus.Fields{
			"ride_id":    ride.ID,
			"request_id": ride.RequestID,
			"driver_id":  ride.DriverID,
		},
	})
}

// NotifyRideStarted tells the customer the ride is under way.
func (s *NotificationService) NotifyRideStarted(ctx context.Context, ride domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRideStarted,
		RecipientID: ride.CustomerID,
		Title:       "Ride Started",
		Message:     "Your ride has started",
		Data:        logrus.Fields{"ride_id": ride.ID},
	})
}

// NotifyRideCompleted sends the fare to the customer and the earning to the driver.
func (s *NotificationService) NotifyRideCompleted(ctx context.Context, ride domain.Ride) {
	s.send(ctx, Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.CustomerID,
		Title:       "Ride Completed",
		Message:     fmt.Sprintf("Total fare: %s for %s km", ride.TotalCost.StringFixed(2), ride.TotalKm.StringFixed(2)),
		Data:        logrus.Fields{"ride_id": ride.ID, "total_cost": ride.TotalCost.String()},
	})
	s.send(ctx, Notification{
		Type:        NotificationRideCompleted,
		RecipientID: ride.DriverID,
		Title:       "Ride Completed",
		Message:     fmt.Sprintf("You earned %s", ride.DriverEarning.StringFixed(2)),
		Data:        logrus.Fields{"ride_id": ride.ID, "driver_earning": ride.DriverEarning.String()},
	})
}

// NotifyRideCancelled tells both parties the ride is off.
func (s *NotificationService) NotifyRideCancelled(ctx context.Context, ride domain.Ride) {
	for _, recipient := range []string{ride.CustomerID, ride.DriverID} {
		s.send(ctx, Notification{
			Type:        NotificationRideCancelled,
			RecipientID: recipient,
			Title:       "Ride Cancelled",
			Message:     fmt.Sprintf("The ride on %s at %s was cancelled", domain.FormatDate(ride.RideDate), ride.PickupTime),
			Data: logrus.Fields{
				"ride_id":             ride.ID,
				"cancellation_charge": ride.CancellationCharge.String(),
				"driver_penalty":      ride.DriverPenalty.String(),
			},
		})
	}
}

// NotifyFeedbackReceived tells the rated party about a new rating.
func (s *NotificationService) NotifyFeedbackReceived(ctx context.Context, f domain.Feedback) {
	s.send(ctx, Notification{
		Type:        NotificationFeedbackReceived,
		RecipientID: f.ToUserID,
		Title:       "New Rating",
		Message:     fmt.Sprintf("You received %d of %d stars", f.Rating, domain.MaxRating),
		Data:        logrus.Fields{"ride_id": f.RideID, "rating": f.Rating},
	})
}

// send delivers a notification.
func (s *NotificationService) send(ctx context.Context, n Notification) {
	if n.RecipientID == "" {
		return
	}
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now()

	s.log.WithFields(n.Data).
		WithContext(ctx).
		WithFields(logrus.Fields{
			"notification_id": n.ID,
			"type":            n.Type,
			"recipient_id":    n.RecipientID,
		}).
		Info(n.Title + ": " + n.Message)
}

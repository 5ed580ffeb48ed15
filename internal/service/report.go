package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// EarningsReport totals earnings over a date range.
type EarningsReport struct {
	DriverID  string
	From      time.Time
	To        time.Time
	Total     decimal.Decimal
	RideCount int
}

// ReportService answers read-only questions about rides and earnings.
type ReportService struct {
	rides   repository.RideRepository
	timeout time.Duration
}

// NewReportService creates a new ReportService.
func NewReportService(rides repository.RideRepository, timeout time.Duration) *ReportService {
	return &ReportService{rides: rides, timeout: timeout}
}

// Ride returns a ride by ID.
func (s *ReportService) Ride(ctx context.Context, rideID string) (domain.Ride, error) {
	if rideID == "" {
		return domain.Ride{}, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ride, err := s.rides.GetByID(ctx, rideID)
	if err != nil {
		return domain.Ride{}, classify(err, ErrRideNotFound)
	}
	return *ride, nil
}

// RidesForUser returns the rides a user took part in as customer or driver.
func (s *ReportService) RidesForUser(ctx context.Context, userID string) ([]domain.Ride, error) {
	if userID == "" {
		return nil, ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rides, err := s.rides.ListByUser(ctx, userID)
	if err != nil {
		return nil, classify(err, nil)
	}
	return derefRides(rides), nil
}

// DriverEarnings totals what the driver earned on rides dated in [from, to]:
// trip earnings plus cancellation earnings minus penalties.
func (s *ReportService) DriverEarnings(ctx context.Context, driverID string, from, to time.Time) (EarningsReport, error) {
	if driverID == "" {
		return EarningsReport{}, ErrInvalidID
	}
	return s.earnings(ctx, driverID, from, to, func(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
		return s.rides.SumDriverEarnings(ctx, driverID, from, to)
	})
}

// PlatformEarnings totals what the platform earned on rides dated in [from, to].
func (s *ReportService) PlatformEarnings(ctx context.Context, from, to time.Time) (EarningsReport, error) {
	return s.earnings(ctx, "", from, to, s.rides.SumPlatformEarnings)
}

func (s *ReportService) earnings(
	ctx context.Context,
	driverID string,
	from, to time.Time,
	sum func(ctx context.Context, from, to time.Time) (decimal.Decimal, error),
) (EarningsReport, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return EarningsReport{}, ErrInvalidDateRange
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	total, err := sum(ctx, from, to)
	if err != nil {
		return EarningsReport{}, classify(err, nil)
	}

	rides, err := s.rides.ListByDateRange(ctx, driverID, from, to)
	if err != nil {
		return EarningsReport{}, classify(err, nil)
	}

	return EarningsReport{
		DriverID:  driverID,
		From:      from,
		To:        to,
		Total:     total.Round(2),
		RideCount: len(rides),
	}, nil
}

func derefRides(rides []*domain.Ride) []domain.Ride {
	out := make([]domain.Ride, len(rides))
	for i, r := range rides {
		out[i] = *r
	}
	return out
}

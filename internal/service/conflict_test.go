package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

func TestConflictSearchRange(t *testing.T) {
	testCases := []struct {
		pickup   domain.TimeOfDay
		from, to domain.TimeOfDay
	}{
		{domain.NewTimeOfDay(14, 0), domain.NewTimeOfDay(13, 30), domain.NewTimeOfDay(14, 15)},
		{domain.NewTimeOfDay(0, 10), domain.NewTimeOfDay(0, 0), domain.NewTimeOfDay(0, 25)},
		{domain.NewTimeOfDay(23, 50), domain.NewTimeOfDay(23, 20), domain.NewTimeOfDay(23, 59)},
	}

	for _, tc := range testCases {
		from, to := ConflictSearchRange(tc.pickup)
		assert.Equal(t, tc.from, from, "pickup %s", tc.pickup)
		assert.Equal(t, tc.to, to, "pickup %s", tc.pickup)
	}
}

// windowRides answers FindActiveInWindow from a fixed list.
type windowRides struct {
	repository.RideRepository
	rides    []domain.Ride
	err      error
	gotDate  time.Time
	from, to domain.TimeOfDay
}

func (w *windowRides) FindActiveInWindow(_ context.Context, driverID string, rideDate time.Time, from, to domain.TimeOfDay) ([]*domain.Ride, error) {
	w.gotDate, w.from, w.to = rideDate, from, to
	if w.err != nil {
		return nil, w.err
	}
	var out []*domain.Ride
	for i := range w.rides {
		r := w.rides[i]
		if r.DriverID == driverID && r.Status.IsActive() && r.PickupTime >= from && r.PickupTime <= to {
			out = append(out, &r)
		}
	}
	return out, nil
}

func TestHasConflict(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 5, 4, 17, 45, 0, 0, time.UTC)
	rides := &windowRides{rides: []domain.Ride{
		{ID: "r1", DriverID: "drv", PickupTime: domain.NewTimeOfDay(14, 0), Status: domain.RideStatusScheduled},
		{ID: "r2", DriverID: "drv", PickupTime: domain.NewTimeOfDay(18, 0), Status: domain.RideStatusCompleted},
	}}
	checker := NewConflictChecker(rides)

	conflict, err := checker.HasConflict(ctx, "drv", date, domain.NewTimeOfDay(14, 30))
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.Equal(t, domain.DateOf(date), rides.gotDate)

	conflict, err = checker.HasConflict(ctx, "drv", date, domain.NewTimeOfDay(15, 0))
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = checker.HasConflict(ctx, "drv", date, domain.NewTimeOfDay(18, 0))
	require.NoError(t, err)
	assert.False(t, conflict, "completed rides never block")

	_, err = checker.HasConflict(ctx, "drv", date, domain.TimeOfDay(-1))
	assert.ErrorIs(t, err, ErrInvalidPickupTime)

	_, err = checker.HasConflict(ctx, "", date, domain.NewTimeOfDay(9, 0))
	assert.ErrorIs(t, err, ErrInvalidID)

	rides.err = errors.New("timeout")
	_, err = checker.HasConflict(ctx, "drv", date, domain.NewTimeOfDay(9, 0))
	assert.ErrorIs(t, err, ErrUpstream)
}

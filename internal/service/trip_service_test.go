package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/tracking"
)

func recordTrip(t *testing.T, env *testEnv, start time.Time, distance, earnings float64) int64 {
	t.Helper()
	resolver := NewConfigResolver(env.monthly, env.settings)
	recorder := NewTripRecorder(env.db, env.trips, resolver)
	trip, err := recorder.Finalize(tracking.Result{
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		DistanceMiles: distance,
	}, earnings, "RideShare")
	require.NoError(t, err)
	return trip.ID
}

func TestEditTripKeepsMonthBucket(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTripService(env.trips)

	start := time.Date(2024, 9, 30, 22, 0, 0, 0, time.UTC)
	id := recordTrip(t, env, start, 10, 20)

	// Move the start time into October.
	newStart := start.AddDate(0, 0, 2)
	edited, err := svc.EditTrip(id, newStart, newStart.Add(2*time.Hour), 14, 25)
	require.NoError(t, err)
	require.NotNil(t, edited)

	assert.True(t, edited.StartTime.Equal(newStart))
	assert.Equal(t, 14.0, edited.DistanceMiles)
	assert.Equal(t, 25.0, edited.Earnings)
	assert.Equal(t, "09-2024", edited.MonthKey, "month bucket is fixed at recording time")
}

func TestEditTripValidation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTripService(env.trips)

	start := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	id := recordTrip(t, env, start, 10, 20)

	_, err := svc.EditTrip(id, start, start, 10, 20)
	assert.True(t, errors.Is(err, errs.ErrValidation), "error = %v, want ErrValidation", err)

	_, err = svc.EditTrip(id, start, start.Add(time.Hour), -1, 20)
	assert.True(t, errors.Is(err, errs.ErrValidation), "error = %v, want ErrValidation", err)
}

func TestEditMissingTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTripService(env.trips)

	start := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	trip, err := svc.EditTrip(999, start, start.Add(time.Hour), 1, 1)
	require.NoError(t, err)
	assert.Nil(t, trip)
}

func TestDeleteTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTripService(env.trips)

	start := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	id := recordTrip(t, env, start, 10, 20)

	deleted, err := svc.DeleteTrip(id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteTrip(id)
	require.NoError(t, err)
	assert.False(t, deleted)

	trips, err := svc.GetAllTrips()
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestGetAllTripsOrdered(t *testing.T) {
	env := newTestEnv(t)
	svc := NewTripService(env.trips)

	base := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	recordTrip(t, env, base.Add(4*time.Hour), 5, 10)
	recordTrip(t, env, base, 5, 10)
	recordTrip(t, env, base.Add(2*time.Hour), 5, 10)

	trips, err := svc.GetAllTrips()
	require.NoError(t, err)
	require.Len(t, trips, 3)
	for i := 1; i < len(trips); i++ {
		assert.False(t, trips[i].StartTime.Before(trips[i-1].StartTime), "trips not ordered by start time")
	}
}

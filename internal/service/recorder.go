package service

import (
	"database/sql"
	"fmt"

	"github.com/driverlog/miletracker/internal/database"
	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
	"github.com/driverlog/miletracker/internal/repository"
	"github.com/driverlog/miletracker/internal/tracking"
)

// TripRecorder finalizes a stopped session into a persisted trip. The trip
// and its monthly bucket are written in one transaction, so a reader never
// sees a trip without its bucket.
type TripRecorder struct {
	db       *sql.DB
	trips    *repository.TripRepository
	resolver *ConfigResolver
}

// NewTripRecorder creates a new trip recorder
func NewTripRecorder(db *sql.DB, trips *repository.TripRepository, resolver *ConfigResolver) *TripRecorder {
	return &TripRecorder{db: db, trips: trips, resolver: resolver}
}

// Finalize turns a session result into a stored trip. On a persistence
// failure the computed in-memory trip is returned alongside the error so the
// caller can retry the write with the same value.
func (r *TripRecorder) Finalize(res tracking.Result, earnings float64, appName string) (*models.Trip, error) {
	if !res.EndTime.After(res.StartTime) {
		return nil, fmt.Errorf("%w: trip end %v not after start %v", errs.ErrValidation, res.EndTime, res.StartTime)
	}
	if res.DistanceMiles < 0 {
		return nil, fmt.Errorf("%w: negative distance %v", errs.ErrValidation, res.DistanceMiles)
	}
	if earnings < 0 {
		return nil, fmt.Errorf("%w: negative earnings %v", errs.ErrValidation, earnings)
	}

	trip := &models.Trip{
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		DistanceMiles: res.DistanceMiles,
		Earnings:      earnings,
		AppName:       appName,
		MonthKey:      models.MonthKeyFor(res.StartTime),
	}

	err := database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := r.resolver.GetOrCreateMonthlyConfig(tx, trip.MonthKey); err != nil {
			return err
		}
		return r.trips.InsertTrip(tx, trip)
	})
	if err != nil {
		return trip, fmt.Errorf("%w: saving trip: %v", errs.ErrPersistence, err)
	}

	return trip, nil
}

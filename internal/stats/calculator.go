package stats

import (
	"fmt"
	"math"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
)

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

// TripCosts computes the per-trip financial figures under the given fuel
// parameters: gas cost = (distance / mpg) * price, net = earnings - gas.
// mpg must be positive and both parameters finite; anything else would turn
// the arithmetic into Inf or NaN and poison every figure downstream.
func TripCosts(trip models.Trip, params models.FuelParams) (models.TripCosts, error) {
	if params.MPG <= 0 || !finite(params.MPG) {
		return models.TripCosts{}, fmt.Errorf("%w: mpg must be positive and finite, got %v", errs.ErrValidation, params.MPG)
	}
	if !finite(params.PricePerGallon) {
		return models.TripCosts{}, fmt.Errorf("%w: non-finite gas price %v", errs.ErrValidation, params.PricePerGallon)
	}
	if trip.DistanceMiles < 0 {
		return models.TripCosts{}, fmt.Errorf("%w: negative distance %v", errs.ErrValidation, trip.DistanceMiles)
	}

	gasCost := (trip.DistanceMiles / params.MPG) * params.PricePerGallon
	return models.TripCosts{
		DurationSeconds: trip.Duration().Seconds(),
		GasCost:         gasCost,
		NetEarnings:     trip.Earnings - gasCost,
	}, nil
}

// SkippedTrip records a trip excluded from an aggregate together with the
// reason.
type SkippedTrip struct {
	TripID int64 `json:"trip_id"`
	Err    error `json:"-"`
}

// Aggregate sums the statistics over a finite set of trips under one
// resolved fuel-parameter pair. Invalid trips are skipped and reported
// rather than aborting the batch; callers that want all-or-nothing can treat
// a non-empty skip list as failure. An empty input yields all zeroes.
func Aggregate(trips []models.Trip, params models.FuelParams) (models.AggregateStats, []SkippedTrip) {
	var agg models.AggregateStats
	var skipped []SkippedTrip

	for _, trip := range trips {
		costs, err := TripCosts(trip, params)
		if err != nil {
			skipped = append(skipped, SkippedTrip{TripID: trip.ID, Err: err})
			continue
		}

		agg.TotalTrips++
		agg.TotalTimeSeconds += costs.DurationSeconds
		agg.TotalDistanceMiles += trip.DistanceMiles
		agg.TotalEarnings += trip.Earnings
		agg.TotalGasCost += costs.GasCost
	}

	agg.NetEarnings = agg.TotalEarnings - agg.TotalGasCost
	if agg.TotalTimeSeconds > 0 {
		agg.HourlyEarnings = agg.NetEarnings / (agg.TotalTimeSeconds / 3600)
	}

	return agg, skipped
}

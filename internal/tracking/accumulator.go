package tracking

import (
	"fmt"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
	"github.com/driverlog/miletracker/internal/spatial"
)

// DistanceAccumulator sums incremental great-circle distance over the
// position fixes of one active session. No outlier or GPS-noise filtering is
// applied: the total is exactly the sum of consecutive haversine legs, so a
// jittery fix inflates the total. Keeping it raw keeps the distance
// reproducible from the fix sequence.
type DistanceAccumulator struct {
	prev       *models.Position
	totalMiles float64
}

// NewDistanceAccumulator returns an accumulator with no previous fix and a
// zero total.
func NewDistanceAccumulator() *DistanceAccumulator {
	return &DistanceAccumulator{}
}

// Update processes the next position fix. The first fix of a session only
// seeds the previous position and contributes no distance. Non-finite
// coordinates are rejected before the total or the previous fix is touched.
func (a *DistanceAccumulator) Update(p models.Position) error {
	if !p.Finite() {
		return fmt.Errorf("%w: non-finite coordinates (%v, %v)", errs.ErrValidation, p.Latitude, p.Longitude)
	}

	if a.prev != nil {
		meters := spatial.HaversineDistance(a.prev.Latitude, a.prev.Longitude, p.Latitude, p.Longitude)
		a.totalMiles += spatial.MetersToMiles(meters)
	}
	a.prev = &p

	return nil
}

// TotalMiles returns the running total in miles. Monotonically non-decreasing
// within a session.
func (a *DistanceAccumulator) TotalMiles() float64 {
	return a.totalMiles
}

package stats

import (
	"sort"
	"time"

	"github.com/driverlog/miletracker/internal/models"
)

// TripIndex is the derived year -> month -> day grouping over a trip
// collection. Day keys are midnight in the location the index was built
// with. The index is recomputed on demand and never persisted.
type TripIndex map[int]map[int]map[time.Time][]models.Trip

// BuildIndex partitions trips by the calendar date of their start time in
// loc. Every trip lands in exactly one day bucket; within a bucket trips are
// ordered by start time ascending. A nil loc means local time.
func BuildIndex(trips []models.Trip, loc *time.Location) TripIndex {
	if loc == nil {
		loc = time.Local
	}

	idx := make(TripIndex)
	for _, trip := range trips {
		start := trip.StartTime.In(loc)
		year := start.Year()
		month := int(start.Month())
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)

		if idx[year] == nil {
			idx[year] = make(map[int]map[time.Time][]models.Trip)
		}
		if idx[year][month] == nil {
			idx[year][month] = make(map[time.Time][]models.Trip)
		}
		idx[year][month][day] = append(idx[year][month][day], trip)
	}

	for _, months := range idx {
		for _, days := range months {
			for _, bucket := range days {
				sort.SliceStable(bucket, func(i, j int) bool {
					return bucket[i].StartTime.Before(bucket[j].StartTime)
				})
			}
		}
	}

	return idx
}

// Years returns the indexed years in ascending order.
func (idx TripIndex) Years() []int {
	years := make([]int, 0, len(idx))
	for y := range idx {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Months returns the indexed months of a year in ascending order.
func (idx TripIndex) Months(year int) []int {
	months := make([]int, 0, len(idx[year]))
	for m := range idx[year] {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// Days returns the indexed days of a month in ascending order.
func (idx TripIndex) Days(year, month int) []time.Time {
	days := make([]time.Time, 0, len(idx[year][month]))
	for d := range idx[year][month] {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// DayTrips returns the ordered trips of one day bucket.
func (idx TripIndex) DayTrips(year, month int, day time.Time) []models.Trip {
	return idx[year][month][day]
}

// MonthTrips flattens all day buckets of a month, days ascending.
func (idx TripIndex) MonthTrips(year, month int) []models.Trip {
	var trips []models.Trip
	for _, day := range idx.Days(year, month) {
		trips = append(trips, idx[year][month][day]...)
	}
	return trips
}

// Flatten reproduces the indexed trips, years/months/days ascending.
func (idx TripIndex) Flatten() []models.Trip {
	var trips []models.Trip
	for _, year := range idx.Years() {
		for _, month := range idx.Months(year) {
			trips = append(trips, idx.MonthTrips(year, month)...)
		}
	}
	return trips
}

package models

import "time"

// MonthKeyLayout is the "MM-YYYY" layout used to bucket trips and monthly
// configuration by calendar month.
const MonthKeyLayout = "01-2006"

// Trip represents one completed driving session.
//
// MonthKey is derived from StartTime when the trip is first recorded and is
// never recomputed afterwards: editing a trip's start time into a different
// month does not move it between monthly buckets.
type Trip struct {
	ID            int64     `json:"id" db:"id"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
	DistanceMiles float64   `json:"distance_miles" db:"distance_miles"`
	Earnings      float64   `json:"earnings" db:"earnings"`
	AppName       string    `json:"app_name,omitempty" db:"app_name"`
	MonthKey      string    `json:"month_key" db:"month_key"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MonthKeyFor returns the month key for the given instant.
func MonthKeyFor(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// Duration returns the elapsed time between start and end.
func (t *Trip) Duration() time.Duration {
	return t.EndTime.Sub(t.StartTime)
}

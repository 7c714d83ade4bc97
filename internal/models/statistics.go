package models

// TripCosts holds the derived financial figures for a single trip.
type TripCosts struct {
	DurationSeconds float64 `json:"duration_seconds"`
	GasCost         float64 `json:"gas_cost"`
	NetEarnings     float64 `json:"net_earnings"`
}

// AggregateStats summarizes a finite set of trips under one resolved
// fuel-parameter pair.
type AggregateStats struct {
	TotalTrips         int     `json:"total_trips"`
	TotalTimeSeconds   float64 `json:"total_time_seconds"`
	TotalDistanceMiles float64 `json:"total_distance_miles"`
	TotalEarnings      float64 `json:"total_earnings"`
	TotalGasCost       float64 `json:"total_gas_cost"`
	NetEarnings        float64 `json:"net_earnings"`
	HourlyEarnings     float64 `json:"hourly_earnings"`
}

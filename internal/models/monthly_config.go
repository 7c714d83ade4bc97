package models

import "time"

// MonthlyConfig holds the per-month fuel figures used for cost estimates.
// A record is created lazily with zero values on the first trip of a month;
// mpg == 0 means the user never edited it and the defaults apply at
// resolution time.
type MonthlyConfig struct {
	ID             int64     `json:"id" db:"id"`
	MonthKey       string    `json:"month_key" db:"month_key"`
	MPG            float64   `json:"mpg" db:"mpg"`
	PricePerGallon float64   `json:"price_per_gallon" db:"price_per_gallon"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// FuelParams is a resolved {mpg, price-per-gallon} pair, ready to feed the
// stats calculator.
type FuelParams struct {
	MPG            float64 `json:"mpg"`
	PricePerGallon float64 `json:"price_per_gallon"`
}

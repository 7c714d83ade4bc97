package service

import (
	"fmt"
	"math"
	"strconv"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
	"github.com/driverlog/miletracker/internal/repository"
)

// Display defaults used when neither an override nor an edited monthly
// config exists.
const (
	DefaultMPG            = 25.0
	DefaultPricePerGallon = 3.50
)

// Override holds the raw per-month override strings. They are stored as
// typed by the user; unparseable values simply lose at resolution time.
type Override struct {
	MPG            string `json:"mpg"`
	PricePerGallon string `json:"price_per_gallon"`
}

// ConfigResolver is the single authority for fuel parameters. Precedence,
// highest first: per-month override strings from the settings store, the
// persisted monthly config when its mpg is positive, then the hard defaults.
type ConfigResolver struct {
	monthly  *repository.MonthlyConfigRepository
	settings *repository.SettingsRepository
}

// NewConfigResolver creates a new config resolver
func NewConfigResolver(monthly *repository.MonthlyConfigRepository, settings *repository.SettingsRepository) *ConfigResolver {
	return &ConfigResolver{monthly: monthly, settings: settings}
}

// Settings keys for the override strings. The key carries no day component;
// an override applies to the whole month.
func mileageOverrideKey(year, month int) string {
	return fmt.Sprintf("carMileage_%d_%d", year, month)
}

func gasPriceOverrideKey(year, month int) string {
	return fmt.Sprintf("gasPrice_%d_%d", year, month)
}

func monthKeyOf(year, month int) string {
	return fmt.Sprintf("%02d-%04d", month, year)
}

// Resolve returns the fuel parameters to use for the given month.
func (r *ConfigResolver) Resolve(year, month int) (models.FuelParams, error) {
	override, err := r.GetOverride(year, month)
	if err != nil {
		return models.FuelParams{}, err
	}

	// ParseFloat accepts "Inf" and "NaN"; both must lose like any other
	// unusable value, or they would poison every downstream figure.
	mpg, mpgErr := strconv.ParseFloat(override.MPG, 64)
	price, priceErr := strconv.ParseFloat(override.PricePerGallon, 64)
	if mpgErr == nil && priceErr == nil &&
		mpg > 0 && price > 0 && !math.IsInf(mpg, 0) && !math.IsInf(price, 0) {
		return models.FuelParams{MPG: mpg, PricePerGallon: price}, nil
	}

	cfg, err := r.monthly.Get(monthKeyOf(year, month))
	if err != nil {
		return models.FuelParams{}, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	// A zero mpg marks a bucket that was created lazily and never edited.
	if cfg != nil && cfg.MPG > 0 {
		return models.FuelParams{MPG: cfg.MPG, PricePerGallon: cfg.PricePerGallon}, nil
	}

	return models.FuelParams{MPG: DefaultMPG, PricePerGallon: DefaultPricePerGallon}, nil
}

// GetOverride reads the raw override strings for a month. Absent keys come
// back empty.
func (r *ConfigResolver) GetOverride(year, month int) (Override, error) {
	mpg, _, err := r.settings.Get(mileageOverrideKey(year, month))
	if err != nil {
		return Override{}, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	price, _, err := r.settings.Get(gasPriceOverrideKey(year, month))
	if err != nil {
		return Override{}, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return Override{MPG: mpg, PricePerGallon: price}, nil
}

// SetOverride stores the raw override strings for a month.
func (r *ConfigResolver) SetOverride(year, month int, o Override) error {
	if err := r.settings.Set(mileageOverrideKey(year, month), o.MPG); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	if err := r.settings.Set(gasPriceOverrideKey(year, month), o.PricePerGallon); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return nil
}

// MonthlyConfig returns the persisted bucket for a month, or nil when the
// month was never touched. The raw stored values let an edit screen prefill
// without the defaults leaking in.
func (r *ConfigResolver) MonthlyConfig(monthKey string) (*models.MonthlyConfig, error) {
	cfg, err := r.monthly.Get(monthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return cfg, nil
}

// GetOrCreateMonthlyConfig returns the persisted bucket for monthKey,
// creating it with zero values on first access. q lets the trip recorder run
// this inside its write transaction.
func (r *ConfigResolver) GetOrCreateMonthlyConfig(q repository.Querier, monthKey string) (*models.MonthlyConfig, error) {
	cfg, err := r.monthly.GetOrCreate(q, monthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return cfg, nil
}

// UpdateMonthlyConfig replaces the persisted mpg/price for a month.
func (r *ConfigResolver) UpdateMonthlyConfig(monthKey string, mpg, pricePerGallon float64) error {
	if mpg < 0 || pricePerGallon < 0 {
		return fmt.Errorf("%w: mpg and price must not be negative", errs.ErrValidation)
	}
	if err := r.monthly.Update(monthKey, mpg, pricePerGallon); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrPersistence, err)
	}
	return nil
}

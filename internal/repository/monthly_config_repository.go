package repository

import (
	"database/sql"
	"fmt"

	"github.com/driverlog/miletracker/internal/models"
)

// MonthlyConfigRepository handles database operations for per-month fuel
// configuration.
type MonthlyConfigRepository struct {
	db *sql.DB
}

// NewMonthlyConfigRepository creates a new monthly config repository
func NewMonthlyConfigRepository(db *sql.DB) *MonthlyConfigRepository {
	return &MonthlyConfigRepository{db: db}
}

const monthlyConfigColumns = `id, month_key, mpg, price_per_gallon, created_at, updated_at`

// Get retrieves the config for a month key. Returns nil when absent.
func (r *MonthlyConfigRepository) Get(monthKey string) (*models.MonthlyConfig, error) {
	return getMonthlyConfig(r.db, monthKey)
}

// GetOrCreate returns the existing record for monthKey or creates one with
// zero mpg and price. The zero values mean "never edited"; display defaults
// are applied by the config resolver, not here.
func (r *MonthlyConfigRepository) GetOrCreate(q Querier, monthKey string) (*models.MonthlyConfig, error) {
	existing, err := getMonthlyConfig(q, monthKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	res, err := q.Exec(`INSERT INTO monthly_config (month_key, mpg, price_per_gallon) VALUES (?, 0, 0)`, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create monthly config for %s: %w", monthKey, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read monthly config id: %w", err)
	}

	return &models.MonthlyConfig{ID: id, MonthKey: monthKey}, nil
}

// Update replaces the mpg and price for an existing month, creating the row
// first when necessary.
func (r *MonthlyConfigRepository) Update(monthKey string, mpg, pricePerGallon float64) error {
	if _, err := r.GetOrCreate(r.db, monthKey); err != nil {
		return err
	}

	_, err := r.db.Exec(`
		UPDATE monthly_config
		SET mpg = ?, price_per_gallon = ?, updated_at = CURRENT_TIMESTAMP
		WHERE month_key = ?`,
		mpg, pricePerGallon, monthKey,
	)
	if err != nil {
		return fmt.Errorf("failed to update monthly config for %s: %w", monthKey, err)
	}

	return nil
}

func getMonthlyConfig(q Querier, monthKey string) (*models.MonthlyConfig, error) {
	row := q.QueryRow(`SELECT `+monthlyConfigColumns+` FROM monthly_config WHERE month_key = ?`, monthKey)

	var c models.MonthlyConfig
	var createdAt, updatedAt string
	err := row.Scan(&c.ID, &c.MonthKey, &c.MPG, &c.PricePerGallon, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan monthly config: %w", err)
	}

	c.CreatedAt = parseSQLiteTime(createdAt)
	c.UpdatedAt = parseSQLiteTime(updatedAt)

	return &c, nil
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/driverlog/miletracker/internal/models"
)

// TripRepository handles database operations for trips
type TripRepository struct {
	db *sql.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{db: db}
}

const tripColumns = `id, start_time, end_time, distance_miles, earnings, app_name, month_key, created_at, updated_at`

// InsertTrip writes a new trip through q and fills in the store-assigned id.
// Callers needing atomicity with the monthly bucket pass a transaction.
func (r *TripRepository) InsertTrip(q Querier, t *models.Trip) error {
	res, err := q.Exec(`
		INSERT INTO trips (start_time, end_time, distance_miles, earnings, app_name, month_key)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.StartTime.Unix(), t.EndTime.Unix(), t.DistanceMiles, t.Earnings, t.AppName, t.MonthKey,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read trip id: %w", err)
	}
	t.ID = id

	return nil
}

// GetAllTrips retrieves every stored trip, ordered by start time ascending.
func (r *TripRepository) GetAllTrips() ([]models.Trip, error) {
	rows, err := r.db.Query(`SELECT ` + tripColumns + ` FROM trips ORDER BY start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

// GetTripsByMonthKey retrieves the trips of one monthly bucket.
func (r *TripRepository) GetTripsByMonthKey(monthKey string) ([]models.Trip, error) {
	rows, err := r.db.Query(`SELECT `+tripColumns+` FROM trips WHERE month_key = ? ORDER BY start_time ASC`, monthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to query trips for month %s: %w", monthKey, err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}

	return trips, rows.Err()
}

// GetTripByID retrieves a single trip by ID. Returns nil when not found.
func (r *TripRepository) GetTripByID(id int64) (*models.Trip, error) {
	row := r.db.QueryRow(`SELECT `+tripColumns+` FROM trips WHERE id = ?`, id)

	t, err := scanTrip(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// UpdateTrip replaces the editable fields of a trip. The month bucket fixed
// at creation time is deliberately left alone, even when the new start time
// falls in a different month.
func (r *TripRepository) UpdateTrip(id int64, start, end time.Time, distanceMiles, earnings float64) error {
	res, err := r.db.Exec(`
		UPDATE trips
		SET start_time = ?, end_time = ?, distance_miles = ?, earnings = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		start.Unix(), end.Unix(), distanceMiles, earnings, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteTrip removes a trip by ID.
func (r *TripRepository) DeleteTrip(id int64) error {
	res, err := r.db.Exec(`DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrip(s scanner) (models.Trip, error) {
	var t models.Trip
	var startUnix, endUnix int64
	var createdAt, updatedAt string

	err := s.Scan(&t.ID, &startUnix, &endUnix, &t.DistanceMiles, &t.Earnings, &t.AppName, &t.MonthKey, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return t, err
	}
	if err != nil {
		return t, fmt.Errorf("failed to scan trip: %w", err)
	}

	t.StartTime = time.Unix(startUnix, 0).UTC()
	t.EndTime = time.Unix(endUnix, 0).UTC()
	t.CreatedAt = parseSQLiteTime(createdAt)
	t.UpdatedAt = parseSQLiteTime(updatedAt)

	return t, nil
}

// parseSQLiteTime parses the CURRENT_TIMESTAMP text format. A zero time is
// returned for anything unparseable; created/updated stamps are advisory.
func parseSQLiteTime(s string) time.Time {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

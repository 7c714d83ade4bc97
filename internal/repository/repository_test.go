package repository

import (
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/driverlog/miletracker/internal/database"
	"github.com/driverlog/miletracker/internal/models"
)

// newTestDB opens an in-memory database with the full schema. A single
// connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestTripRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	trips := NewTripRepository(db)
	monthly := NewMonthlyConfigRepository(db)

	start := time.Date(2024, 9, 14, 8, 30, 0, 0, time.UTC)
	trip := &models.Trip{
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		DistanceMiles: 12.5,
		Earnings:      28.75,
		AppName:       "RideShare",
		MonthKey:      models.MonthKeyFor(start),
	}

	if _, err := monthly.GetOrCreate(db, trip.MonthKey); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if err := trips.InsertTrip(db, trip); err != nil {
		t.Fatalf("InsertTrip() error = %v", err)
	}
	if trip.ID == 0 {
		t.Fatal("InsertTrip() did not assign an id")
	}

	loaded, err := trips.GetTripByID(trip.ID)
	if err != nil {
		t.Fatalf("GetTripByID() error = %v", err)
	}
	if loaded == nil {
		t.Fatal("GetTripByID() returned nil for stored trip")
	}
	if !loaded.StartTime.Equal(start) || loaded.DistanceMiles != 12.5 || loaded.Earnings != 28.75 {
		t.Errorf("loaded trip = %+v, want original values", loaded)
	}
	if loaded.MonthKey != "09-2024" {
		t.Errorf("MonthKey = %q, want 09-2024", loaded.MonthKey)
	}
}

func TestTripRepositoryUpdateKeepsMonthKey(t *testing.T) {
	db := newTestDB(t)
	trips := NewTripRepository(db)
	monthly := NewMonthlyConfigRepository(db)

	start := time.Date(2024, 9, 30, 23, 0, 0, 0, time.UTC)
	trip := &models.Trip{
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		MonthKey:  models.MonthKeyFor(start),
	}
	if _, err := monthly.GetOrCreate(db, trip.MonthKey); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if err := trips.InsertTrip(db, trip); err != nil {
		t.Fatalf("InsertTrip() error = %v", err)
	}

	// Edit the start time into October; the bucket must not move.
	newStart := start.AddDate(0, 0, 2)
	if err := trips.UpdateTrip(trip.ID, newStart, newStart.Add(time.Hour), 5, 10); err != nil {
		t.Fatalf("UpdateTrip() error = %v", err)
	}

	loaded, err := trips.GetTripByID(trip.ID)
	if err != nil {
		t.Fatalf("GetTripByID() error = %v", err)
	}
	if !loaded.StartTime.Equal(newStart) {
		t.Errorf("StartTime = %v, want %v", loaded.StartTime, newStart)
	}
	if loaded.MonthKey != "09-2024" {
		t.Errorf("MonthKey = %q after edit, want 09-2024", loaded.MonthKey)
	}
}

func TestTripRepositoryDelete(t *testing.T) {
	db := newTestDB(t)
	trips := NewTripRepository(db)
	monthly := NewMonthlyConfigRepository(db)

	start := time.Date(2024, 9, 14, 8, 0, 0, 0, time.UTC)
	trip := &models.Trip{StartTime: start, EndTime: start.Add(time.Hour), MonthKey: models.MonthKeyFor(start)}
	if _, err := monthly.GetOrCreate(db, trip.MonthKey); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if err := trips.InsertTrip(db, trip); err != nil {
		t.Fatalf("InsertTrip() error = %v", err)
	}

	if err := trips.DeleteTrip(trip.ID); err != nil {
		t.Fatalf("DeleteTrip() error = %v", err)
	}
	loaded, err := trips.GetTripByID(trip.ID)
	if err != nil {
		t.Fatalf("GetTripByID() error = %v", err)
	}
	if loaded != nil {
		t.Errorf("trip still present after delete: %+v", loaded)
	}

	if err := trips.DeleteTrip(trip.ID); err != sql.ErrNoRows {
		t.Errorf("second DeleteTrip() error = %v, want sql.ErrNoRows", err)
	}
}

func TestMonthlyConfigGetOrCreate(t *testing.T) {
	db := newTestDB(t)
	monthly := NewMonthlyConfigRepository(db)

	created, err := monthly.GetOrCreate(db, "09-2024")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if created.MPG != 0 || created.PricePerGallon != 0 {
		t.Errorf("new config = %+v, want zero mpg/price", created)
	}

	if err := monthly.Update("09-2024", 28.5, 4.10); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	again, err := monthly.GetOrCreate(db, "09-2024")
	if err != nil {
		t.Fatalf("second GetOrCreate() error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("GetOrCreate created a duplicate: %d vs %d", again.ID, created.ID)
	}
	if again.MPG != 28.5 || again.PricePerGallon != 4.10 {
		t.Errorf("config after update = %+v, want {28.5 4.10}", again)
	}
}

func TestMonthlyConfigGetAbsent(t *testing.T) {
	db := newTestDB(t)
	monthly := NewMonthlyConfigRepository(db)

	cfg, err := monthly.Get("01-2030")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("Get() for absent month = %+v, want nil", cfg)
	}
}

func TestSettingsRepository(t *testing.T) {
	db := newTestDB(t)
	settings := NewSettingsRepository(db)

	if _, ok, err := settings.Get("lastUsedAppName"); err != nil || ok {
		t.Fatalf("Get() on empty store = ok=%v err=%v, want absent", ok, err)
	}

	if err := settings.Set("lastUsedAppName", "RideShare"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := settings.Set("lastUsedAppName", "Delivery"); err != nil {
		t.Fatalf("overwrite Set() error = %v", err)
	}

	val, ok, err := settings.Get("lastUsedAppName")
	if err != nil || !ok {
		t.Fatalf("Get() = ok=%v err=%v, want present", ok, err)
	}
	if val != "Delivery" {
		t.Errorf("Get() = %q, want Delivery", val)
	}

	if err := settings.Delete("lastUsedAppName"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := settings.Get("lastUsedAppName"); ok {
		t.Error("key still present after delete")
	}
	if err := settings.Delete("lastUsedAppName"); err != nil {
		t.Errorf("deleting a missing key should be a no-op, got %v", err)
	}
}

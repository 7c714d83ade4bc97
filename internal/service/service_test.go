package service

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/driverlog/miletracker/internal/database"
	"github.com/driverlog/miletracker/internal/repository"
)

type testEnv struct {
	db       *sql.DB
	trips    *repository.TripRepository
	monthly  *repository.MonthlyConfigRepository
	settings *repository.SettingsRepository
}

func newTestEnv(t *testing.T) *testEnv {
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

	return &testEnv{
		db:       db,
		trips:    repository.NewTripRepository(db),
		monthly:  repository.NewMonthlyConfigRepository(db),
		settings: repository.NewSettingsRepository(db),
	}
}

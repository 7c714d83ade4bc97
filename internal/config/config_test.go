package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("TRIP_TIME_ZONE", "")

	cfg := Load()
	if cfg.Port != ":8080" {
		t.Errorf("Port = %q, want :8080", cfg.Port)
	}
	if cfg.DBPath != "./data/miletracker.db" {
		t.Errorf("DBPath = %q, want ./data/miletracker.db", cfg.DBPath)
	}
	if cfg.TimeZone != time.Local {
		t.Errorf("TimeZone = %v, want local", cfg.TimeZone)
	}
}

func TestLoadTimeZone(t *testing.T) {
	t.Setenv("TRIP_TIME_ZONE", "America/Los_Angeles")
	cfg := Load()
	if cfg.TimeZone.String() != "America/Los_Angeles" {
		t.Errorf("TimeZone = %v, want America/Los_Angeles", cfg.TimeZone)
	}
}

func TestLoadBadTimeZoneFallsBack(t *testing.T) {
	t.Setenv("TRIP_TIME_ZONE", "Not/AZone")
	cfg := Load()
	if cfg.TimeZone != time.Local {
		t.Errorf("TimeZone = %v, want local fallback", cfg.TimeZone)
	}
}

package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port     string
	DBPath   string
	TimeZone *time.Location // calendar used for day/month grouping
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Missing values fall back to development defaults.
func Load() *Config {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/miletracker.db"
	}

	loc := time.Local
	if tz := os.Getenv("TRIP_TIME_ZONE"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			log.Printf("Invalid TRIP_TIME_ZONE %q, falling back to local: %v", tz, err)
		} else {
			loc = l
		}
	}

	return &Config{
		Port:     port,
		DBPath:   dbPath,
		TimeZone: loc,
	}
}

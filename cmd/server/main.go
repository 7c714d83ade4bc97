package main

import (
	"log"

	"github.com/driverlog/miletracker/internal/api"
	"github.com/driverlog/miletracker/internal/config"
	"github.com/driverlog/miletracker/internal/database"
	"github.com/driverlog/miletracker/internal/handler"
	"github.com/driverlog/miletracker/internal/repository"
	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/internal/tracking"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	tripRepo := repository.NewTripRepository(db)
	monthlyRepo := repository.NewMonthlyConfigRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	resolver := service.NewConfigResolver(monthlyRepo, settingsRepo)
	recorder := service.NewTripRecorder(db, tripRepo, resolver)
	tripService := service.NewTripService(tripRepo)
	appNames := service.NewAppNameService(settingsRepo)

	// Fixes arrive over POST /tracking/position; the simulated source only
	// gates permission and start/stop for that flow.
	manager := tracking.NewManager(tracking.NewSimulatedSource(true))

	router := api.SetupRouter(api.Handlers{
		Tracking: handler.NewTrackingHandler(manager, recorder, appNames),
		Trips:    handler.NewTripHandler(tripService, cfg.TimeZone),
		Stats:    handler.NewStatsHandler(tripService, resolver, cfg.TimeZone),
		Config:   handler.NewConfigHandler(resolver),
		Settings: handler.NewSettingsHandler(appNames),
	})

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

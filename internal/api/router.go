package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/handler"
	"github.com/driverlog/miletracker/internal/middleware"
)

// Handlers bundles the wired-up handler set for the router.
type Handlers struct {
	Tracking *handler.TrackingHandler
	Trips    *handler.TripHandler
	Stats    *handler.StatsHandler
	Config   *handler.ConfigHandler
	Settings *handler.SettingsHandler
}

// SetupRouter builds the gin engine and mounts all routes.
func SetupRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Mile Tracker API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		tracking := api.Group("/tracking")
		{
			tracking.POST("/start", h.Tracking.StartTrip)
			tracking.POST("/position", h.Tracking.Position)
			tracking.POST("/stop", h.Tracking.StopTrip)
			tracking.GET("/status", h.Tracking.Status)
		}

		trips := api.Group("/trips")
		{
			trips.GET("", h.Trips.GetTrips)
			trips.GET("/history", h.Trips.History)
			trips.GET("/:id", h.Trips.GetTripByID)
			trips.PUT("/:id", h.Trips.UpdateTrip)
			trips.DELETE("/:id", h.Trips.DeleteTrip)
		}

		months := api.Group("/months")
		{
			months.GET("/:monthKey/config", h.Config.GetMonthlyConfig)
			months.PUT("/:monthKey/config", h.Config.UpdateMonthlyConfig)
			months.GET("/:monthKey/override", h.Config.GetOverride)
			months.PUT("/:monthKey/override", h.Config.SetOverride)
		}

		api.GET("/stats", h.Stats.GetStats)

		appnames := api.Group("/appnames")
		{
			appnames.GET("", h.Settings.ListAppNames)
			appnames.POST("", h.Settings.AddAppName)
			appnames.GET("/last", h.Settings.GetLastUsed)
			appnames.PUT("/last", h.Settings.SetLastUsed)
			appnames.DELETE("/:name", h.Settings.DeleteAppName)
		}
	}

	return r
}

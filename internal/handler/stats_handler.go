package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/internal/stats"
	"github.com/driverlog/miletracker/pkg/response"
)

// StatsHandler computes aggregate trip statistics for a month or a single
// day under the resolved fuel parameters of that month.
type StatsHandler struct {
	trips    *service.TripService
	resolver *service.ConfigResolver
	timeZone *time.Location
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(trips *service.TripService, resolver *service.ConfigResolver, timeZone *time.Location) *StatsHandler {
	return &StatsHandler{trips: trips, resolver: resolver, timeZone: timeZone}
}

// GetStats handles GET /api/v1/stats?year=&month=[&day=]
func (h *StatsHandler) GetStats(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		response.BadRequest(c, "Invalid year", err)
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, "Invalid month", err)
		return
	}

	day := 0
	if dayStr := c.Query("day"); dayStr != "" {
		day, err = strconv.Atoi(dayStr)
		if err != nil || day < 1 || day > 31 {
			response.BadRequest(c, "Invalid day", err)
			return
		}
	}

	all, err := h.trips.GetAllTrips()
	if err != nil {
		response.InternalError(c, "Failed to get trips", err)
		return
	}

	params, err := h.resolver.Resolve(year, month)
	if err != nil {
		response.InternalError(c, "Failed to resolve fuel config", err)
		return
	}

	idx := stats.BuildIndex(all, h.timeZone)
	selected := idx.MonthTrips(year, month)
	if day > 0 {
		dayKey := time.Date(year, time.Month(month), day, 0, 0, 0, 0, h.timeZone)
		selected = idx.DayTrips(year, month, dayKey)
	}

	agg, skipped := stats.Aggregate(selected, params)

	skippedIDs := make([]int64, 0, len(skipped))
	for _, s := range skipped {
		skippedIDs = append(skippedIDs, s.TripID)
	}

	response.Success(c, gin.H{
		"stats":         agg,
		"fuel_params":   params,
		"skipped_trips": skippedIDs,
	})
}

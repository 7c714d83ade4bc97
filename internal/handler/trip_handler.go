package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/internal/stats"
	"github.com/driverlog/miletracker/pkg/response"
)

// TripHandler handles HTTP requests for stored trips
type TripHandler struct {
	service  *service.TripService
	timeZone *time.Location
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService, timeZone *time.Location) *TripHandler {
	return &TripHandler{service: service, timeZone: timeZone}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	trips, err := h.service.GetAllTrips()
	if err != nil {
		response.InternalError(c, "Failed to get trips", err)
		return
	}
	response.Success(c, gin.H{"data": trips, "total": len(trips)})
}

// GetTripByID handles GET /api/v1/trips/:id
func (h *TripHandler) GetTripByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trip ID", err)
		return
	}

	trip, err := h.service.GetTripByID(id)
	if err != nil {
		response.InternalError(c, "Failed to get trip", err)
		return
	}
	if trip == nil {
		response.NotFound(c, "Trip not found")
		return
	}

	response.Success(c, trip)
}

type editTripRequest struct {
	StartTime     time.Time `json:"start_time" binding:"required"`
	EndTime       time.Time `json:"end_time" binding:"required"`
	DistanceMiles float64   `json:"distance_miles"`
	Earnings      float64   `json:"earnings"`
}

// UpdateTrip handles PUT /api/v1/trips/:id
func (h *TripHandler) UpdateTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trip ID", err)
		return
	}

	var req editTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	trip, err := h.service.EditTrip(id, req.StartTime, req.EndTime, req.DistanceMiles, req.Earnings)
	if errors.Is(err, errs.ErrValidation) {
		response.BadRequest(c, "Invalid trip fields", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to update trip", err)
		return
	}
	if trip == nil {
		response.NotFound(c, "Trip not found")
		return
	}

	response.Success(c, trip)
}

// DeleteTrip handles DELETE /api/v1/trips/:id
func (h *TripHandler) DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid trip ID", err)
		return
	}

	deleted, err := h.service.DeleteTrip(id)
	if err != nil {
		response.InternalError(c, "Failed to delete trip", err)
		return
	}
	if !deleted {
		response.NotFound(c, "Trip not found")
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// History handles GET /api/v1/trips/history: the nested year -> month -> day
// view the trip history screen renders.
func (h *TripHandler) History(c *gin.Context) {
	trips, err := h.service.GetAllTrips()
	if err != nil {
		response.InternalError(c, "Failed to get trips", err)
		return
	}

	idx := stats.BuildIndex(trips, h.timeZone)
	response.Success(c, historyView(idx))
}

func historyView(idx stats.TripIndex) []gin.H {
	years := make([]gin.H, 0, len(idx))
	for _, year := range idx.Years() {
		months := make([]gin.H, 0)
		for _, month := range idx.Months(year) {
			days := make([]gin.H, 0)
			for _, day := range idx.Days(year, month) {
				days = append(days, gin.H{
					"date":  day.Format("2006-01-02"),
					"trips": idx.DayTrips(year, month, day),
				})
			}
			months = append(months, gin.H{"month": month, "days": days})
		}
		years = append(years, gin.H{"year": year, "months": months})
	}
	return years
}

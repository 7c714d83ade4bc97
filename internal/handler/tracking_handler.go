package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/models"
	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/internal/tracking"
	"github.com/driverlog/miletracker/pkg/response"
)

// TrackingHandler drives the live session: start, position fixes, status
// and stop-and-record.
type TrackingHandler struct {
	manager  *tracking.Manager
	recorder *service.TripRecorder
	appNames *service.AppNameService
}

// NewTrackingHandler creates a new tracking handler
func NewTrackingHandler(manager *tracking.Manager, recorder *service.TripRecorder, appNames *service.AppNameService) *TrackingHandler {
	return &TrackingHandler{manager: manager, recorder: recorder, appNames: appNames}
}

type startTripRequest struct {
	AppName           string  `json:"app_name"`
	ProjectedEarnings float64 `json:"projected_earnings"`
}

// StartTrip handles POST /api/v1/tracking/start
func (h *TrackingHandler) StartTrip(c *gin.Context) {
	var req startTripRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body", err)
			return
		}
	}

	err := h.manager.StartTrip(c.Request.Context(), tracking.TripContext{
		AppName:           req.AppName,
		ProjectedEarnings: req.ProjectedEarnings,
	})
	switch {
	case errors.Is(err, errs.ErrPermissionDenied):
		response.Error(c, http.StatusForbidden, "Location permission denied", err)
		return
	case errors.Is(err, errs.ErrInvalidState):
		response.Conflict(c, "A trip is already being tracked", err)
		return
	case err != nil:
		response.InternalError(c, "Failed to start tracking", err)
		return
	}

	if req.AppName != "" {
		if err := h.appNames.Remember(req.AppName); err != nil {
			// History upkeep must not fail the trip itself.
			log.Printf("Failed to remember app name %q: %v", req.AppName, err)
		}
	}

	snap, trip := h.manager.Status()
	response.Success(c, gin.H{"session": snap, "trip": trip})
}

// Position handles POST /api/v1/tracking/position. It exists for sources
// that deliver fixes over HTTP instead of an in-process subscription.
func (h *TrackingHandler) Position(c *gin.Context) {
	var p models.Position
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid position", err)
		return
	}

	if err := h.manager.OnPosition(p); err != nil {
		if errors.Is(err, errs.ErrValidation) {
			response.BadRequest(c, "Rejected position fix", err)
			return
		}
		response.InternalError(c, "Failed to apply position", err)
		return
	}

	response.Success(c, h.statusBody())
}

type stopTripRequest struct {
	Earnings *float64 `json:"earnings"`
}

// StopTrip handles POST /api/v1/tracking/stop. Earnings default to the
// projected value entered at start when the body carries none.
func (h *TrackingHandler) StopTrip(c *gin.Context) {
	var req stopTripRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body", err)
			return
		}
	}

	res, tripCtx, err := h.manager.StopTrip()
	if err != nil {
		if errors.Is(err, errs.ErrInvalidState) {
			response.Conflict(c, "No trip is being tracked", err)
			return
		}
		response.InternalError(c, "Failed to stop tracking", err)
		return
	}

	earnings := tripCtx.ProjectedEarnings
	if req.Earnings != nil {
		earnings = *req.Earnings
	}

	trip, err := h.recorder.Finalize(res, earnings, tripCtx.AppName)
	switch {
	case errors.Is(err, errs.ErrValidation):
		response.BadRequest(c, "Invalid trip result", err)
		return
	case errors.Is(err, errs.ErrPersistence):
		// The computed trip is surfaced so the client can retry the save.
		c.JSON(http.StatusInternalServerError, response.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to save trip",
			Data:    gin.H{"unsaved_trip": trip},
		})
		return
	case err != nil:
		response.InternalError(c, "Failed to record trip", err)
		return
	}

	response.Success(c, trip)
}

// Status handles GET /api/v1/tracking/status
func (h *TrackingHandler) Status(c *gin.Context) {
	response.Success(c, h.statusBody())
}

func (h *TrackingHandler) statusBody() gin.H {
	snap, trip := h.manager.Status()
	return gin.H{"session": snap, "trip": trip}
}

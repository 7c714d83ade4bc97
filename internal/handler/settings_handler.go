package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/pkg/response"
)

// SettingsHandler exposes the app-name history and last-used selection.
type SettingsHandler struct {
	appNames *service.AppNameService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(appNames *service.AppNameService) *SettingsHandler {
	return &SettingsHandler{appNames: appNames}
}

// ListAppNames handles GET /api/v1/appnames
func (h *SettingsHandler) ListAppNames(c *gin.Context) {
	names, err := h.appNames.List()
	if err != nil {
		response.InternalError(c, "Failed to list app names", err)
		return
	}
	response.Success(c, gin.H{"data": names})
}

type appNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddAppName handles POST /api/v1/appnames
func (h *SettingsHandler) AddAppName(c *gin.Context) {
	var req appNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	err := h.appNames.Remember(req.Name)
	if errors.Is(err, errs.ErrValidation) {
		response.BadRequest(c, "Invalid app name", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to store app name", err)
		return
	}

	response.Success(c, gin.H{"name": req.Name})
}

// DeleteAppName handles DELETE /api/v1/appnames/:name
func (h *SettingsHandler) DeleteAppName(c *gin.Context) {
	name := c.Param("name")
	if err := h.appNames.Forget(name); err != nil {
		response.InternalError(c, "Failed to delete app name", err)
		return
	}
	response.Success(c, gin.H{"deleted": name})
}

// SetLastUsed handles PUT /api/v1/appnames/last. Selecting a name records it
// as last-used and adds it to the history when it is new.
func (h *SettingsHandler) SetLastUsed(c *gin.Context) {
	var req appNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	err := h.appNames.Remember(req.Name)
	if errors.Is(err, errs.ErrValidation) {
		response.BadRequest(c, "Invalid app name", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to store app name", err)
		return
	}

	response.Success(c, gin.H{"name": req.Name})
}

// GetLastUsed handles GET /api/v1/appnames/last
func (h *SettingsHandler) GetLastUsed(c *gin.Context) {
	name, err := h.appNames.LastUsed()
	if err != nil {
		response.InternalError(c, "Failed to read last-used app name", err)
		return
	}
	response.Success(c, gin.H{"name": name})
}

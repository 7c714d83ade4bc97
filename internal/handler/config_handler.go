package handler

import (
	"errors"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driverlog/miletracker/internal/errs"
	"github.com/driverlog/miletracker/internal/service"
	"github.com/driverlog/miletracker/pkg/response"
)

// monthKeyPattern matches the "MM-YYYY" bucket identifier.
var monthKeyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])-\d{4}$`)

// ConfigHandler handles HTTP requests for monthly fuel configuration and
// the per-month override strings.
type ConfigHandler struct {
	resolver *service.ConfigResolver
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(resolver *service.ConfigResolver) *ConfigHandler {
	return &ConfigHandler{resolver: resolver}
}

func monthKeyParts(monthKey string) (year, month int) {
	// Pattern-checked before this is called.
	month, _ = strconv.Atoi(monthKey[:2])
	year, _ = strconv.Atoi(monthKey[3:])
	return year, month
}

// GetMonthlyConfig handles GET /api/v1/months/:monthKey/config. Returns the
// persisted bucket plus the values the resolver would actually use.
func (h *ConfigHandler) GetMonthlyConfig(c *gin.Context) {
	monthKey := c.Param("monthKey")
	if !monthKeyPattern.MatchString(monthKey) {
		response.BadRequest(c, "Invalid month key, want MM-YYYY", nil)
		return
	}

	stored, err := h.resolver.MonthlyConfig(monthKey)
	if err != nil {
		response.InternalError(c, "Failed to read monthly config", err)
		return
	}

	year, month := monthKeyParts(monthKey)
	resolved, err := h.resolver.Resolve(year, month)
	if err != nil {
		response.InternalError(c, "Failed to resolve fuel config", err)
		return
	}

	response.Success(c, gin.H{"month_key": monthKey, "config": stored, "resolved": resolved})
}

type updateMonthlyConfigRequest struct {
	MPG            float64 `json:"mpg"`
	PricePerGallon float64 `json:"price_per_gallon"`
}

// UpdateMonthlyConfig handles PUT /api/v1/months/:monthKey/config
func (h *ConfigHandler) UpdateMonthlyConfig(c *gin.Context) {
	monthKey := c.Param("monthKey")
	if !monthKeyPattern.MatchString(monthKey) {
		response.BadRequest(c, "Invalid month key, want MM-YYYY", nil)
		return
	}

	var req updateMonthlyConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	err := h.resolver.UpdateMonthlyConfig(monthKey, req.MPG, req.PricePerGallon)
	if errors.Is(err, errs.ErrValidation) {
		response.BadRequest(c, "Invalid fuel values", err)
		return
	}
	if err != nil {
		response.InternalError(c, "Failed to update monthly config", err)
		return
	}

	response.Success(c, gin.H{"month_key": monthKey, "mpg": req.MPG, "price_per_gallon": req.PricePerGallon})
}

// GetOverride handles GET /api/v1/months/:monthKey/override
func (h *ConfigHandler) GetOverride(c *gin.Context) {
	monthKey := c.Param("monthKey")
	if !monthKeyPattern.MatchString(monthKey) {
		response.BadRequest(c, "Invalid month key, want MM-YYYY", nil)
		return
	}

	year, month := monthKeyParts(monthKey)
	override, err := h.resolver.GetOverride(year, month)
	if err != nil {
		response.InternalError(c, "Failed to read override", err)
		return
	}

	response.Success(c, override)
}

// SetOverride handles PUT /api/v1/months/:monthKey/override. The strings are
// stored exactly as given; unparseable values simply lose at resolution time.
func (h *ConfigHandler) SetOverride(c *gin.Context) {
	monthKey := c.Param("monthKey")
	if !monthKeyPattern.MatchString(monthKey) {
		response.BadRequest(c, "Invalid month key, want MM-YYYY", nil)
		return
	}

	var req service.Override
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	year, month := monthKeyParts(monthKey)
	if err := h.resolver.SetOverride(year, month, req); err != nil {
		response.InternalError(c, "Failed to store override", err)
		return
	}

	response.Success(c, req)
}

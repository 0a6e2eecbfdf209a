package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skycast-io/skycast/internal/apierr"
	"github.com/skycast-io/skycast/internal/dashboard"
	"github.com/skycast-io/skycast/internal/location"
	"github.com/skycast-io/skycast/internal/server/utils"
	"go.uber.org/zap"
)

// CycleRecorder counts fetch cycles for the metrics endpoint.
type CycleRecorder interface {
	RecordFetchCycle(success bool)
}

type DashboardHandler struct {
	orch    *dashboard.Orchestrator
	search  *dashboard.SearchController
	metrics CycleRecorder
	logger  *zap.Logger
}

func NewDashboardHandler(orch *dashboard.Orchestrator, search *dashboard.SearchController, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		orch:   orch,
		search: search,
		logger: logger,
	}
}

func (h *DashboardHandler) SetCycleRecorder(metrics CycleRecorder) {
	h.metrics = metrics
}

func (h *DashboardHandler) recordCycle(success bool) {
	if h.metrics != nil {
		h.metrics.RecordFetchCycle(success)
	}
}

// GetState renders the whole dashboard view.
func (h *DashboardHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.orch.State())
}

// Refresh re-runs the fetch cycle for the active position. On failure the
// previous data stays on display and the client gets a notification error.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	if err := h.orch.Refresh(ctx); err != nil {
		h.recordCycle(false)
		reqLogger.Error("Dashboard refresh failed", zap.Error(err))
		c.JSON(fetchErrorStatus(err), ErrorResponse{
			Error:   "Failed to fetch weather data. Please try again.",
			Code:    fetchErrorCode(err),
			Details: err.Error(),
		})
		return
	}

	h.recordCycle(true)
	c.JSON(http.StatusOK, h.orch.State())
}

// SelectLocation pins the dashboard to a chosen place and disables automatic
// device positioning until UseCurrentLocation is called.
func (h *DashboardHandler) SelectLocation(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req SelectLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		reqLogger.Warn("Invalid location selection", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid coordinates",
			Code:    "INVALID_COORDINATES",
			Details: errs[0].Message,
		})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = location.DisplayName(req.Name, req.State, req.Country)
	}

	place := location.Place{
		ID:          req.ID,
		Name:        req.Name,
		DisplayName: displayName,
		Country:     req.Country,
		State:       req.State,
		Lat:         req.Lat,
		Lon:         req.Lon,
	}

	if err := h.orch.SelectPlace(ctx, place); err != nil {
		h.recordCycle(false)
		reqLogger.Error("Failed to fetch weather for selected place",
			zap.String("place", place.DisplayName),
			zap.Error(err))
		c.JSON(fetchErrorStatus(err), ErrorResponse{
			Error:   "Failed to fetch weather data. Please try again.",
			Code:    fetchErrorCode(err),
			Details: err.Error(),
		})
		return
	}

	h.recordCycle(true)
	c.JSON(http.StatusOK, h.orch.State())
}

// UseCurrentLocation switches back to device positioning.
func (h *DashboardHandler) UseCurrentLocation(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	if err := h.orch.UseCurrentLocation(ctx); err != nil {
		reqLogger.Warn("Failed to use current location", zap.Error(err))
		if apierr.IsGeolocation(err) {
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{
				Error:   "Location access is unavailable. Search for a place instead.",
				Code:    "GEOLOCATION_ERROR",
				Details: err.Error(),
			})
			return
		}
		c.JSON(fetchErrorStatus(err), ErrorResponse{
			Error:   "Failed to fetch weather data. Please try again.",
			Code:    fetchErrorCode(err),
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, h.orch.State())
}

// DismissAlert hides an alert for the rest of the session.
func (h *DashboardHandler) DismissAlert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Alert id is required",
			Code:  "INVALID_PARAMS",
		})
		return
	}

	h.orch.DismissAlert(id)
	c.JSON(http.StatusOK, h.orch.State())
}

// SetSearchQuery feeds a keystroke into the debounced search controller.
func (h *DashboardHandler) SetSearchQuery(c *gin.Context) {
	var req SearchQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	h.search.SetQuery(req.Query)
	c.JSON(http.StatusOK, h.search.State())
}

// GetSearchResults returns the current dropdown state.
func (h *DashboardHandler) GetSearchResults(c *gin.Context) {
	c.JSON(http.StatusOK, h.search.State())
}

func fetchErrorStatus(err error) int {
	if apierr.IsTimeout(err) {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

func fetchErrorCode(err error) string {
	if apierr.IsTimeout(err) {
		return "UPSTREAM_TIMEOUT"
	}
	return "UPSTREAM_ERROR"
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skycast-io/skycast/internal/location"
	"github.com/skycast-io/skycast/internal/server/utils"
	"go.uber.org/zap"
)

type LocationsHandler struct {
	client *location.Client
	logger *zap.Logger
}

func NewLocationsHandler(client *location.Client, logger *zap.Logger) *LocationsHandler {
	return &LocationsHandler{
		client: client,
		logger: logger,
	}
}

// Search is the direct, non-debounced search endpoint. Short queries come
// back empty without an upstream call.
func (h *LocationsHandler) Search(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := h.logger.With(zap.String("request_id", utils.GetRequestIDFromGinContext(c)))

	var req SearchLocationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request parameters",
			Code:    "INVALID_PARAMS",
			Details: err.Error(),
		})
		return
	}

	places, err := h.client.Search(ctx, req.Query, req.Limit)
	if err != nil {
		reqLogger.Error("Location search failed", zap.String("query", req.Query), zap.Error(err))
		c.JSON(fetchErrorStatus(err), ErrorResponse{
			Error:   "Failed to search locations. Please try again.",
			Code:    fetchErrorCode(err),
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, places)
}

// Popular returns the static suggestion list.
func (h *LocationsHandler) Popular(c *gin.Context) {
	c.JSON(http.StatusOK, location.PopularCities())
}

package handlers

import (
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/skycast-io/skycast/internal/server/middlewares"
	"go.uber.org/zap"
)

type MetricsHandler struct {
	logger      *zap.Logger
	httpMetrics *middlewares.HTTPMetrics

	mu               sync.RWMutex
	fetchCycles      int64
	fetchCycleErrors int64
}

func NewMetricsHandler(httpMetrics *middlewares.HTTPMetrics, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{
		logger:      logger,
		httpMetrics: httpMetrics,
	}
}

// RecordFetchCycle counts dashboard fetch cycles and their failures.
func (h *MetricsHandler) RecordFetchCycle(success bool) {
	h.mu.Lock()
	h.fetchCycles++
	if !success {
		h.fetchCycleErrors++
	}
	h.mu.Unlock()
}

// ServeMetrics exposes counters in Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	totals, avgDuration, active := h.httpMetrics.Snapshot()

	response := "# HELP http_requests_total Total number of HTTP requests\n"
	response += "# TYPE http_requests_total counter\n"
	for key, count := range totals {
		response += "http_requests_total{route_status=\"" + key + "\"} " + strconv.FormatInt(count, 10) + "\n"
	}

	response += "\n# HELP http_request_duration_seconds_avg Average duration of HTTP requests\n"
	response += "# TYPE http_request_duration_seconds_avg gauge\n"
	response += "http_request_duration_seconds_avg " + strconv.FormatFloat(avgDuration, 'f', 6, 64) + "\n"

	response += "\n# HELP http_active_requests Number of active HTTP requests\n"
	response += "# TYPE http_active_requests gauge\n"
	response += "http_active_requests " + strconv.FormatInt(active, 10) + "\n"

	h.mu.RLock()
	cycles := h.fetchCycles
	cycleErrors := h.fetchCycleErrors
	h.mu.RUnlock()

	response += "\n# HELP dashboard_fetch_cycles_total Total dashboard fetch cycles\n"
	response += "# TYPE dashboard_fetch_cycles_total counter\n"
	response += "dashboard_fetch_cycles_total " + strconv.FormatInt(cycles, 10) + "\n"

	response += "\n# HELP dashboard_fetch_cycle_errors_total Failed dashboard fetch cycles\n"
	response += "# TYPE dashboard_fetch_cycle_errors_total counter\n"
	response += "dashboard_fetch_cycle_errors_total " + strconv.FormatInt(cycleErrors, 10) + "\n"

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(200, response)
}

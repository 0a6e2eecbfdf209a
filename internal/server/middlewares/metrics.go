package middlewares

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// HTTPMetrics accumulates request counters for the /metrics endpoint.
type HTTPMetrics struct {
	mu               sync.RWMutex
	requestsTotal    map[string]int64
	requestDurations []float64
	activeRequests   int64
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requestsTotal: make(map[string]int64),
	}
}

// Snapshot copies the counters out for rendering.
func (m *HTTPMetrics) Snapshot() (totals map[string]int64, avgDuration float64, active int64) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals = make(map[string]int64, len(m.requestsTotal))
	for k, v := range m.requestsTotal {
		totals[k] = v
	}

	if len(m.requestDurations) > 0 {
		sum := 0.0
		for _, d := range m.requestDurations {
			sum += d
		}
		avgDuration = sum / float64(len(m.requestDurations))
	}

	return totals, avgDuration, m.activeRequests
}

func MetricsMiddleware(metrics *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.mu.Lock()
		metrics.activeRequests++
		metrics.mu.Unlock()

		c.Next()

		duration := time.Since(start).Seconds()
		key := c.Request.Method + " " + c.FullPath() + "_" + strconv.Itoa(c.Writer.Status())

		metrics.mu.Lock()
		metrics.requestsTotal[key]++
		metrics.requestDurations = append(metrics.requestDurations, duration)
		metrics.activeRequests--

		// Keep only the last 1000 durations to bound memory.
		if len(metrics.requestDurations) > 1000 {
			metrics.requestDurations = metrics.requestDurations[len(metrics.requestDurations)-1000:]
		}
		metrics.mu.Unlock()
	}
}

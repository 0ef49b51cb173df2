package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)

	// DispatchCounter counts outbound remote dispatch calls by action/table.
	DispatchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_dispatch_total",
			Help: "Total number of remote dispatch calls",
		},
		[]string{"service", "action", "table", "outcome"},
	)

	registerOnce sync.Once
)

// HTTPMetrics holds configuration and state for HTTP metrics collection
type HTTPMetrics struct {
	ServiceName string
}

// NewHTTPMetrics creates a new HTTP metrics collector for a specific service
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter, RequestDurationHistogram, DispatchCounter)
	})
	return &HTTPMetrics{ServiceName: serviceName}
}

// Middleware instruments every request with count and duration.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		RequestCounter.WithLabelValues(m.ServiceName, c.Request.Method, path, status).Inc()
		RequestDurationHistogram.WithLabelValues(m.ServiceName, c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}

// CountDispatch records one outbound dispatch call.
func (m *HTTPMetrics) CountDispatch(action, table string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	DispatchCounter.WithLabelValues(m.ServiceName, action, table, outcome).Inc()
}

// Handler exposes the scrape endpoint.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

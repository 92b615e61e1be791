package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HTTPMetrics instruments the HTTP surface.
type HTTPMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewHTTPMetrics configures the HTTP server instruments.
func NewHTTPMetrics(cfg Config, provider metric.MeterProvider) (*HTTPMetrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "playbridge"
	}
	meter := provider.Meter(name)

	requests, err := meter.Int64Counter("playbridge_http_requests_total")
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("playbridge_http_request_duration_ms")
	if err != nil {
		return nil, err
	}

	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		attrs := FilterAttributes(
			attribute.String("endpoint", c.Request.Method+" "+route),
			attribute.String("status_code", strconv.Itoa(c.Writer.Status())),
		)
		opts := metric.WithAttributes(attrs...)

		ctx := c.Request.Context()
		m.requests.Add(ctx, 1, opts)
		m.duration.Record(ctx, float64(time.Since(start).Milliseconds()), opts)
	}
}

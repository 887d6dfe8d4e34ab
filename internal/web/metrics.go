package web

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	pipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of crew pipeline runs",
		},
		[]string{"phase", "status"}, // status: success, failed
	)

	pipelineRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Crew pipeline run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1h
		},
		[]string{"phase"},
	)

	documentsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_created_total",
			Help: "Total number of documents created through the API",
		},
		[]string{"doc_type"},
	)
)

// recordPipelineRun records the outcome of one pipeline run.
func recordPipelineRun(phase string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	pipelineRunsTotal.WithLabelValues(phase, status).Inc()
	pipelineRunDuration.WithLabelValues(phase).Observe(duration.Seconds())
}

// metricsMiddleware observes request durations per route template.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

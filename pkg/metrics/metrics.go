package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Buckets sized for backend calls from a few milliseconds up to the client timeout
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// Registry is what /api/metrics serves.
	Registry = prometheus.DefaultGatherer

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Backend client metrics
	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_client_request_duration_seconds",
			Help:    "Marketplace backend call duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	BackendRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_client_request_total",
			Help: "Total number of marketplace backend calls",
		},
		[]string{"operation", "status"},
	)

	// Query cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of fresh query cache hits",
		},
		[]string{"resource"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of query cache misses or stale reads",
		},
		[]string{"resource"},
	)

	CacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Total number of query invalidations",
		},
		[]string{"resource"},
	)

	QueryRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_retries_total",
			Help: "Total number of read retries",
		},
		[]string{"resource"},
	)

	// View metrics
	ViewRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuitionhub_view_renders_total",
			Help: "Rendered view documents by state",
		},
		[]string{"view", "state"},
	)

	Mutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuitionhub_mutations_total",
			Help: "Mutations by action and outcome",
		},
		[]string{"action", "status"},
	)

	Confirmations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tuitionhub_confirmations_total",
			Help: "Destructive-action confirmations by outcome",
		},
		[]string{"action", "outcome"},
	)

	FrontendLogsReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tuitionhub_frontend_logs_received_total",
			Help: "Total number of frontend log entries received",
		},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}

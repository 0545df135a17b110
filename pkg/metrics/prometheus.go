// Package metrics provides Prometheus metrics for the PEAK leaderboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the PEAK service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Core Business Metrics - What really matters for a pay-to-rank board
	paymentsStarted   prometheus.Counter
	paymentsConfirmed prometheus.Counter
	paymentsFailed    prometheus.Counter
	paymentsAborted   prometheus.Counter
	captureDuplicate  prometheus.Counter
	captureLatency    prometheus.Histogram

	// Gateway Metrics - External payment gateway round-trips
	gatewayOrdersCreated prometheus.Counter
	gatewayErrors        *prometheus.CounterVec
	gatewayLatency       *prometheus.HistogramVec

	// Store Metrics - Entry store health
	entriesTotal     prometheus.Gauge
	entriesCommitted prometheus.Counter
	commitDuplicates prometheus.Counter
	contentUpdates   prometheus.Counter
	storeSaveLatency prometheus.Histogram
	storeSaveErrors  prometheus.Counter
	seedFallbacks    prometheus.Counter

	// Ranking Metrics - Derived-view computation
	rankingComputeLatency prometheus.Histogram
	projectionRequests    prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "peak",
		subsystem:        "leaderboard",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// NewMetricsManager is an alias of NewManager kept for test readability.
func NewMetricsManager(opts ...Option) *Manager {
	return NewManager(opts...)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Business Metrics - Focus on what drives business value
	m.paymentsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_started_total",
		Help:      "Total number of payment flows that passed form validation",
	})

	m.paymentsConfirmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_confirmed_total",
		Help:      "Total number of payment flows that reached the confirmed state",
	})

	m.paymentsFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_failed_total",
		Help:      "Total number of payment flows that ended in the error state",
	})

	m.paymentsAborted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "payments_aborted_total",
		Help:      "Total number of payment flows aborted by the user before capture",
	})

	m.captureDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capture_duplicate_total",
		Help:      "Total number of duplicate capture callbacks suppressed by the dedupe guard",
	})

	m.captureLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capture_latency_milliseconds",
		Help:      "Histogram of gateway capture latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Gateway Metrics
	m.gatewayOrdersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gateway_orders_created_total",
		Help:      "Total number of orders created with the external gateway",
	})

	m.gatewayErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "gateway_errors_total",
			Help:      "Total number of gateway errors by operation and kind",
		},
		[]string{"operation", "kind"},
	)

	m.gatewayLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "gateway_latency_milliseconds",
			Help:      "Gateway round-trip latency in milliseconds by operation",
			Buckets:   m.histogramBuckets,
		},
		[]string{"operation"},
	)

	// Store Metrics - Entry store health
	m.entriesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_total",
		Help:      "Total number of entries on the board (business scale)",
	})

	m.entriesCommitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_committed_total",
		Help:      "Total number of entries committed after successful captures",
	})

	m.commitDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commit_duplicates_total",
		Help:      "Total number of commits skipped because the transaction id already exists",
	})

	m.contentUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "content_updates_total",
		Help:      "Total number of message/media updates applied to entries",
	})

	m.storeSaveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_latency_milliseconds",
		Help:      "Replace-on-write persistence latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_errors_total",
		Help:      "Total number of persistence write failures",
	})

	m.seedFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seed_fallbacks_total",
		Help:      "Total number of startups that fell back to the seed dataset",
	})

	// Ranking Metrics
	m.rankingComputeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_compute_latency_milliseconds",
		Help:      "Latency of full ranking/tiering recomputation in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.projectionRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projection_requests_total",
		Help:      "Total number of projected-rank previews computed",
	})

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of operations that resulted in errors",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordPaymentStarted increments the started payments counter.
func RecordPaymentStarted() {
	globalManager.paymentsStarted.Inc()
}

// RecordPaymentConfirmed increments the confirmed payments counter.
func RecordPaymentConfirmed() {
	globalManager.paymentsConfirmed.Inc()
}

// RecordPaymentFailed increments the failed payments counter.
func RecordPaymentFailed() {
	globalManager.paymentsFailed.Inc()
}

// RecordPaymentAborted increments the aborted payments counter.
func RecordPaymentAborted() {
	globalManager.paymentsAborted.Inc()
}

// RecordCaptureDuplicate increments the duplicate capture callback counter.
func RecordCaptureDuplicate() {
	globalManager.captureDuplicate.Inc()
}

// RecordCaptureLatency records gateway capture latency in milliseconds.
func RecordCaptureLatency(latencyMs float64) {
	globalManager.captureLatency.Observe(latencyMs)
}

// RecordGatewayOrderCreated increments the created orders counter.
func RecordGatewayOrderCreated() {
	globalManager.gatewayOrdersCreated.Inc()
}

// RecordGatewayError increments the gateway error counter for an operation.
func RecordGatewayError(operation, kind string) {
	globalManager.gatewayErrors.WithLabelValues(operation, kind).Inc()
}

// RecordGatewayLatency records gateway round-trip latency for an operation.
func RecordGatewayLatency(operation string, latencyMs float64) {
	globalManager.gatewayLatency.WithLabelValues(operation).Observe(latencyMs)
}

// UpdateEntriesTotal sets the total entries gauge.
func UpdateEntriesTotal(count int) {
	globalManager.entriesTotal.Set(float64(count))
}

// RecordEntryCommitted increments the committed entries counter.
func RecordEntryCommitted() {
	globalManager.entriesCommitted.Inc()
}

// RecordCommitDuplicate increments the duplicate commit counter.
func RecordCommitDuplicate() {
	globalManager.commitDuplicates.Inc()
}

// RecordContentUpdate increments the content update counter.
func RecordContentUpdate() {
	globalManager.contentUpdates.Inc()
}

// RecordStoreSaveLatency records persistence write latency in milliseconds.
func RecordStoreSaveLatency(latencyMs float64) {
	globalManager.storeSaveLatency.Observe(latencyMs)
}

// RecordStoreSaveError increments the persistence failure counter.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// RecordSeedFallback increments the seed fallback counter.
func RecordSeedFallback() {
	globalManager.seedFallbacks.Inc()
}

// RecordRankingComputeLatency records ranking recomputation latency.
func RecordRankingComputeLatency(latencyMs float64) {
	globalManager.rankingComputeLatency.Observe(latencyMs)
}

// RecordProjectionRequest increments the projected-rank preview counter.
func RecordProjectionRequest() {
	globalManager.projectionRequests.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType increments the error counter for a type/severity pair.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of a failed operation.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// Package metrics provides Prometheus metrics for the quizboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the quizboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline metrics
	pipelineRuns     prometheus.Counter
	pipelineDuration prometheus.Histogram
	degradedCells    *prometheus.CounterVec
	participants     prometheus.Gauge
	quizzes          prometheus.Gauge

	// Source metrics
	sourceLoadErrors prometheus.Counter
	sourceRetries    prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "quizboard",
		subsystem:        "leaderboard",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: m.histogramBuckets}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pipelineRuns = auto.NewCounter(m.counterOpts("pipeline_runs_total",
		"Total number of leaderboard computations"))
	m.pipelineDuration = auto.NewHistogram(m.histogramOpts("pipeline_duration_milliseconds",
		"Duration of dataset load plus leaderboard computation in milliseconds"))
	m.degradedCells = auto.NewCounterVec(m.counterOpts("degraded_cells_total",
		"Cells replaced by a default value, by logical field and kind"), []string{"field", "kind"})
	m.participants = auto.NewGauge(m.gaugeOpts("participants",
		"Participants in the last computed leaderboard"))
	m.quizzes = auto.NewGauge(m.gaugeOpts("quizzes",
		"Quiz columns in the last loaded dataset"))

	m.sourceLoadErrors = auto.NewCounter(m.counterOpts("source_load_errors_total",
		"Dataset loads that failed after all retries"))
	m.sourceRetries = auto.NewCounter(m.counterOpts("source_retries_total",
		"Dataset read attempts that were retried"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})
	m.httpRateLimited = auto.NewCounterVec(m.counterOpts("http_rate_limited_total",
		"Requests rejected by the rate limiter"), []string{"endpoint"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Error responses by endpoint, method and error type"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_bytes",
		"Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutines",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_milliseconds",
		"Average GC pause in milliseconds"))
}

// RecordPipelineRun counts one computation and observes its duration.
func (m *Manager) RecordPipelineRun(durationMs float64) {
	m.pipelineRuns.Inc()
	m.pipelineDuration.Observe(durationMs)
}

// RecordDegradedCell counts a cell that fell back to a default.
func (m *Manager) RecordDegradedCell(field, kind string) {
	m.degradedCells.WithLabelValues(field, kind).Inc()
}

// UpdateLeaderboardSize sets the participant and quiz gauges.
func (m *Manager) UpdateLeaderboardSize(participants, quizzes int) {
	m.participants.Set(float64(participants))
	m.quizzes.Set(float64(quizzes))
}

// RecordPipelineRun counts one computation and observes its duration.
func RecordPipelineRun(durationMs float64) { globalManager.RecordPipelineRun(durationMs) }

// RecordDegradedCell counts a cell that fell back to a default.
func RecordDegradedCell(field, kind string) { globalManager.RecordDegradedCell(field, kind) }

// UpdateLeaderboardSize sets the participant and quiz gauges.
func UpdateLeaderboardSize(participants, quizzes int) {
	globalManager.UpdateLeaderboardSize(participants, quizzes)
}

// RecordSourceLoadError counts a dataset load that failed after retries.
func RecordSourceLoadError() { globalManager.sourceLoadErrors.Inc() }

// RecordSourceRetry counts a retried dataset read.
func RecordSourceRetry() { globalManager.sourceRetries.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

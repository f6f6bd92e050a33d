// Package metrics provides Prometheus metrics for the TradeScore service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns the metric collectors and the registry they live in.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	pipelineRowsProcessed *prometheus.CounterVec
	pipelineRowsDropped   *prometheus.CounterVec
	pipelineStageDuration *prometheus.HistogramVec

	datasetLoadErrors prometheus.Counter
	scoredLeadsTotal  prometheus.Counter
	matchRequests     prometheus.Counter
	scoringDuration   prometheus.Histogram
}

var defaultManager *Manager

func init() { //nolint:gochecknoinits // global metrics setup mirrors process lifetime
	defaultManager = NewManager()
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tradescore",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	m.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by endpoint.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.pipelineRowsProcessed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_rows_processed_total",
		Help:      "Rows emitted by each pipeline stage.",
	}, []string{"stage"})

	m.pipelineRowsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "pipeline_rows_dropped_total",
		Help:      "Rows dropped by each pipeline stage.",
	}, []string{"stage"})

	m.pipelineStageDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "pipeline_stage_duration_seconds",
		Help:      "Wall time spent in each pipeline stage.",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.datasetLoadErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "dataset_load_errors_total",
		Help:      "Failed dataset reads.",
	})

	m.scoredLeadsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "scored_leads_total",
		Help:      "Exporter leads scored across all requests.",
	})

	m.matchRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "match_requests_total",
		Help:      "Matchmaking requests served.",
	})

	m.scoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "scoring_duration_seconds",
		Help:      "Latency of a full scoring pass over the lead set.",
		Buckets:   m.histogramBuckets,
	})

	m.registry.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.pipelineRowsProcessed,
		m.pipelineRowsDropped,
		m.pipelineStageDuration,
		m.datasetLoadErrors,
		m.scoredLeadsTotal,
		m.matchRequests,
		m.scoringDuration,
	)
}

// Registry exposes the manager's registry for promhttp handlers.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Package-level helpers recording against the default manager.

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	defaultManager.httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records request latency in seconds.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	defaultManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// RecordPipelineRows records rows emitted by a stage.
func RecordPipelineRows(stage string, n int) {
	defaultManager.pipelineRowsProcessed.WithLabelValues(stage).Add(float64(n))
}

// RecordPipelineDropped records rows dropped by a stage.
func RecordPipelineDropped(stage string, n int) {
	defaultManager.pipelineRowsDropped.WithLabelValues(stage).Add(float64(n))
}

// RecordPipelineStageDuration records a stage's wall time in seconds.
func RecordPipelineStageDuration(stage string, seconds float64) {
	defaultManager.pipelineStageDuration.WithLabelValues(stage).Observe(seconds)
}

// RecordDatasetLoadError records a failed dataset read.
func RecordDatasetLoadError() {
	defaultManager.datasetLoadErrors.Inc()
}

// RecordScoredLeads records the number of leads scored in one pass.
func RecordScoredLeads(n int) {
	defaultManager.scoredLeadsTotal.Add(float64(n))
}

// RecordMatchRequest records one matchmaking request.
func RecordMatchRequest() {
	defaultManager.matchRequests.Inc()
}

// RecordScoringDuration records the latency of a scoring pass in seconds.
func RecordScoringDuration(seconds float64) {
	defaultManager.scoringDuration.Observe(seconds)
}

// GetRegistry returns the default manager's registry.
func GetRegistry() *prometheus.Registry {
	return defaultManager.registry
}

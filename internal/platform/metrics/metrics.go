package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the review service.
type Metrics struct {
	RecordsLoaded      prometheus.Gauge
	DocumentsLoaded    prometheus.Gauge
	MalformedLines     prometheus.Counter
	DroppedRecords     prometheus.Counter
	Reloads            *prometheus.CounterVec
	Edits              *prometheus.CounterVec
	Decisions          *prometheus.CounterVec
	PersistDuration    prometheus.Histogram
	PersistFailures    prometheus.Counter
	Navigation         *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// New creates and registers all metrics on reg. Pass prometheus.NewRegistry()
// in tests so instances do not collide on the default registry.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "benchreview_records_loaded",
			Help: "Number of records in the current in-memory dataset",
		}),
		DocumentsLoaded: f.NewGauge(prometheus.GaugeOpts{
			Name: "benchreview_documents_loaded",
			Help: "Number of documents in the current in-memory dataset",
		}),
		MalformedLines: f.NewCounter(prometheus.CounterOpts{
			Name: "benchreview_malformed_lines_total",
			Help: "Record file lines skipped because they were not JSON objects",
		}),
		DroppedRecords: f.NewCounter(prometheus.CounterOpts{
			Name: "benchreview_dropped_records_total",
			Help: "Records dropped at load because they had no pdf",
		}),
		Reloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "benchreview_reloads_total",
			Help: "Dataset loads by trigger and result",
		}, []string{"trigger", "result"}),
		Edits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "benchreview_edits_total",
			Help: "Record edits by field and outcome (applied, unmatched, invalid, failed)",
		}, []string{"field", "outcome"}),
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "benchreview_review_decisions_total",
			Help: "Review status changes by resulting status",
		}, []string{"status"}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "benchreview_persist_duration_seconds",
			Help:    "Duration of whole-dataset rewrites",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "benchreview_persist_failures_total",
			Help: "Dataset rewrites that failed and left the file unchanged",
		}),
		Navigation: f.NewCounterVec(prometheus.CounterOpts{
			Name: "benchreview_navigation_total",
			Help: "Session navigation calls by action",
		}, []string{"action"}),
		HTTPRequestLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "benchreview_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveLoad records the result of a dataset load.
func (m *Metrics) ObserveLoad(trigger string, documents, records, malformed, dropped int) {
	m.DocumentsLoaded.Set(float64(documents))
	m.RecordsLoaded.Set(float64(records))
	m.MalformedLines.Add(float64(malformed))
	m.DroppedRecords.Add(float64(dropped))
	m.Reloads.WithLabelValues(trigger, "ok").Inc()
}

// IncrementLoadFailure records a load that did not replace the dataset.
func (m *Metrics) IncrementLoadFailure(trigger string) {
	m.Reloads.WithLabelValues(trigger, "error").Inc()
}

// IncrementEdit records one edit attempt.
func (m *Metrics) IncrementEdit(field, outcome string) {
	m.Edits.WithLabelValues(field, outcome).Inc()
}

// IncrementDecision records a change of review status.
func (m *Metrics) IncrementDecision(status string) {
	m.Decisions.WithLabelValues(status).Inc()
}

// ObservePersist records the duration of a rewrite and whether it failed.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePersist(start time.Time, err error) {
	m.PersistDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.PersistFailures.Inc()
	}
}

// IncrementNavigation records a session navigation call.
func (m *Metrics) IncrementNavigation(action string) {
	m.Navigation.WithLabelValues(action).Inc()
}

// ObserveHTTPRequest records the latency of a completed request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	m.HTTPRequestLatency.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}

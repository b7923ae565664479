// Package metrics exposes prometheus instrumentation for extraction
// runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the extractor. A nil *Registry is
// valid and records nothing, so instrumentation stays optional for
// library callers.
type Registry struct {
	KeywordsTotal      *prometheus.CounterVec
	SnapshotsTotal     prometheus.Counter
	RowsTotal          prometheus.Counter
	ActiveEdges        prometheus.Gauge
	ExtractionsTotal   *prometheus.CounterVec
	ExtractionDuration prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all extractor metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.KeywordsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gruptree_keywords_total",
			Help: "Deck keywords scanned, by keyword name",
		},
		[]string{"keyword"},
	)

	r.SnapshotsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "gruptree_snapshots_total",
			Help: "Hierarchy snapshots emitted",
		},
	)

	r.RowsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "gruptree_rows_total",
			Help: "Snapshot rows emitted",
		},
	)

	r.ActiveEdges = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "gruptree_active_edges",
			Help: "Edges in the accumulated hierarchy",
		},
	)

	r.ExtractionsTotal = promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gruptree_extractions_total",
			Help: "Extraction runs, by outcome",
		},
		[]string{"status"},
	)

	r.ExtractionDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gruptree_extraction_duration_seconds",
			Help:    "Wall time of one extraction run",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	return r
}

// Gatherer returns the underlying prometheus gatherer, for exposition
// or text-file dumps.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// ObserveKeyword counts one scanned keyword.
func (r *Registry) ObserveKeyword(name string) {
	if r == nil {
		return
	}
	r.KeywordsTotal.WithLabelValues(name).Inc()
}

// ObserveSnapshot counts one emitted snapshot of the given row count
// and records the current edge count.
func (r *Registry) ObserveSnapshot(rows, edges int) {
	if r == nil {
		return
	}
	r.SnapshotsTotal.Inc()
	r.RowsTotal.Add(float64(rows))
	r.ActiveEdges.Set(float64(edges))
}

// ObserveRun records the outcome and duration of one extraction run.
func (r *Registry) ObserveRun(status string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.ExtractionsTotal.WithLabelValues(status).Inc()
	r.ExtractionDuration.Observe(elapsed.Seconds())
}

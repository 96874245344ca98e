// Package metrics provides engine observability: batch throughput, row
// outcomes, and resolution quality.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	BatchesTotal    *prometheus.CounterVec // label: status
	RowsIngested    prometheus.Counter
	RowWarnings     prometheus.Counter
	DuplicateRows   prometheus.Counter
	Resolutions     *prometheus.CounterVec // label: quality
	IngestDuration  prometheus.Histogram
	RecomputeDrift  prometheus.Counter // cached totals that differed from recompute
}

// New registers all engine metrics on reg. Callers pass
// prometheus.DefaultRegisterer in main and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sunlight_ingest_batches_total",
			Help: "Ingestion batches by final filing status",
		}, []string{"status"}),
		RowsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunlight_ingest_rows_total",
			Help: "Rows processed across all batches",
		}),
		RowWarnings: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunlight_ingest_row_warnings_total",
			Help: "Rows recovered with a warning (zeroed amounts, bad dates)",
		}),
		DuplicateRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunlight_ingest_duplicate_rows_total",
			Help: "Rows whose fingerprint already existed (no-op upserts)",
		}),
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sunlight_resolutions_total",
			Help: "Filer name resolutions by match quality",
		}, []string{"quality"}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sunlight_ingest_duration_seconds",
			Help:    "Duration of ingestion batches",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RecomputeDrift: factory.NewCounter(prometheus.CounterOpts{
			Name: "sunlight_recompute_drift_total",
			Help: "Filings whose cached totals differed from a full recompute",
		}),
	}
}

// ObserveIngest records the duration of one ingestion batch.
func (m *Metrics) ObserveIngest(start time.Time) {
	m.IngestDuration.Observe(time.Since(start).Seconds())
}

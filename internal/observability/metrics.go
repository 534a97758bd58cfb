package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "auroral_oval"

// Metrics holds the Prometheus collectors for one oval run.
type Metrics struct {
	GridCells   prometheus.Gauge
	RunDuration prometheus.Gauge
	LastSuccess prometheus.Gauge

	// Boundary extraction metrics.
	BoundariesExtracted *prometheus.CounterVec // labels: band, half
	ExtractionErrors    *prometheus.CounterVec // labels: reason
	RingVertices        *prometheus.GaugeVec   // labels: band, half

	// Export metrics.
	Exports *prometheus.CounterVec // labels: sink, outcome={success,error}
}

// NewMetrics creates and registers all run metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.GridCells,
		m.RunDuration,
		m.LastSuccess,
		m.BoundariesExtracted,
		m.ExtractionErrors,
		m.RingVertices,
		m.Exports,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		GridCells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "grid_cells",
			Help:      "Number of cells in the evaluated intensity field.",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last complete run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time at which the last run finished successfully.",
		}),
		BoundariesExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "boundaries_extracted_total",
			Help:      "Boundary rings extracted by band and grid half.",
		}, []string{"band", "half"}),
		ExtractionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_errors_total",
			Help:      "Boundary extraction failures by reason.",
		}, []string{"reason"}),
		RingVertices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ring_vertices",
			Help:      "Vertex count of each extracted ring.",
		}, []string{"band", "half"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Document exports by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}
}

// WriteTextfile writes every metric in the default registry to path in the
// node_exporter textfile format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges, counters, and histograms for the
// dashboard service.
type Metrics struct {
	ObservationsLoaded prometheus.Gauge
	DatasetLoadErrors  prometheus.Counter
	StoreReady         prometheus.Gauge
	AnalysisDuration   prometheus.Histogram

	PageRequests   *prometheus.CounterVec // labels: page
	ExportRequests *prometheus.CounterVec // labels: kind={raw,yearly,inflections}
	ChartRenders   *prometheus.CounterVec // labels: chart, cache={hit,miss}
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.ObservationsLoaded,
		m.DatasetLoadErrors,
		m.StoreReady,
		m.AnalysisDuration,
		m.PageRequests,
		m.ExportRequests,
		m.ChartRenders,
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
		ObservationsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pollution_dashboard",
			Name:      "observations_loaded",
			Help:      "Number of observations in the loaded dataset.",
		}),
		DatasetLoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pollution_dashboard",
			Name:      "dataset_load_errors_total",
			Help:      "Total dataset load failures (each degrades to an empty view).",
		}),
		StoreReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pollution_dashboard",
			Name:      "store_ready",
			Help:      "1 once the dataset has loaded with at least one observation.",
		}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pollution_dashboard",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a full load-and-analyze pass.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		PageRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollution_dashboard",
			Name:      "page_requests_total",
			Help:      "Dashboard page and API requests by page.",
		}, []string{"page"}),
		ExportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollution_dashboard",
			Name:      "export_requests_total",
			Help:      "CSV export downloads by kind.",
		}, []string{"kind"}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pollution_dashboard",
			Name:      "chart_renders_total",
			Help:      "PNG chart renders by chart name and cache result.",
		}, []string{"chart", "cache"}),
	}
}

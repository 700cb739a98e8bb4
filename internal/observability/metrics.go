package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// tornado map pipeline.
type Metrics struct {
	RecordsFetched  prometheus.Counter
	RowsSkipped     prometheus.Counter     // unparsable CSV rows
	RecordsExcluded *prometheus.CounterVec // labels: reason={region,unknown_magnitude}
	MagnitudeDrift  prometheus.Counter     // out-of-range magnitudes surviving the sentinel filter
	InvalidPoints   prometheus.Counter

	// Boundary metrics.
	BoundaryFetches  *prometheus.CounterVec // labels: level={state,county}, outcome={success,error}
	BoundaryPolygons *prometheus.CounterVec // labels: level, disposition={kept,dropped}
	BoundaryCache    *prometheus.CounterVec // labels: result={hit,miss}

	FetchDuration  *prometheus.HistogramVec // labels: source={dataset,boundary}
	RenderDuration prometheus.Histogram
	RendersTotal   *prometheus.CounterVec // labels: mode={all,severity}

	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RecordsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "records_fetched_total",
			Help:      "Total tornado records decoded from the source dataset.",
		}),
		RowsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "rows_skipped_total",
			Help:      "Total source rows skipped because a field failed to parse.",
		}),
		RecordsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "records_excluded_total",
			Help:      "Records removed by the cleaner, by reason.",
		}, []string{"reason"}),
		MagnitudeDrift: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "magnitude_drift_total",
			Help:      "Post-filter magnitudes outside the EF 0-5 range.",
		}),
		InvalidPoints: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "invalid_points_total",
			Help:      "Records whose coordinates could not produce a valid geometry.",
		}),
		BoundaryFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "boundary_fetches_total",
			Help:      "Census boundary fetches by level and outcome.",
		}, []string{"level", "outcome"}),
		BoundaryPolygons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "boundary_polygons_total",
			Help:      "Boundary polygons kept or dropped by viewport clipping.",
		}, []string{"level", "disposition"}),
		BoundaryCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "boundary_cache_total",
			Help:      "Boundary cache lookups by result.",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tornado_map",
			Name:      "fetch_duration_seconds",
			Help:      "Remote fetch duration by source.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tornado_map",
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete map render.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RendersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tornado_map",
			Name:      "renders_total",
			Help:      "Completed renders by mode.",
		}, []string{"mode"}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tornado_map",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
	}

	prometheus.MustRegister(
		m.RecordsFetched,
		m.RowsSkipped,
		m.RecordsExcluded,
		m.MagnitudeDrift,
		m.InvalidPoints,
		m.BoundaryFetches,
		m.BoundaryPolygons,
		m.BoundaryCache,
		m.FetchDuration,
		m.RenderDuration,
		m.RendersTotal,
		m.PipelineRunning,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RecordsFetched:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tornado_map", Name: "records_fetched_total"}),
		RowsSkipped:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tornado_map", Name: "rows_skipped_total"}),
		RecordsExcluded:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tornado_map", Name: "records_excluded_total"}, []string{"reason"}),
		MagnitudeDrift:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tornado_map", Name: "magnitude_drift_total"}),
		InvalidPoints:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "tornado_map", Name: "invalid_points_total"}),
		BoundaryFetches:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tornado_map", Name: "boundary_fetches_total"}, []string{"level", "outcome"}),
		BoundaryPolygons: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tornado_map", Name: "boundary_polygons_total"}, []string{"level", "disposition"}),
		BoundaryCache:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tornado_map", Name: "boundary_cache_total"}, []string{"result"}),
		FetchDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "tornado_map", Name: "fetch_duration_seconds"}, []string{"source"}),
		RenderDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "tornado_map", Name: "render_duration_seconds"}),
		RendersTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "tornado_map", Name: "renders_total"}, []string{"mode"}),
		PipelineRunning:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "tornado_map", Name: "pipeline_running"}),
	}
}

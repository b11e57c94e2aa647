package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// preload pipeline. There is no scrape endpoint; collectors are read
// in-process and by tests.
type Metrics struct {
	FilesParsed  prometheus.Counter
	FilesSkipped prometheus.Counter
	SheetsParsed prometheus.Counter
	LoadDuration prometheus.Histogram

	// Cache store metrics.
	CacheLoads  *prometheus.CounterVec // labels: format={sqlite,json}, outcome={hit,miss,error}
	CacheSaves  *prometheus.CounterVec // labels: format={sqlite,json}, outcome={ok,error}
	CachedFiles prometheus.Gauge

	// Upper-air fetch metrics.
	SoundingRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	SoundingCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FilesParsed,
		m.FilesSkipped,
		m.SheetsParsed,
		m.LoadDuration,
		m.CacheLoads,
		m.CacheSaves,
		m.CachedFiles,
		m.SoundingRequests,
		m.SoundingCache,
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
		FilesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "files_parsed_total",
			Help:      "Total workbooks parsed into the archive.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "files_skipped_total",
			Help:      "Total workbooks dropped because they could not be opened.",
		}),
		SheetsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "sheets_parsed_total",
			Help:      "Total sheets flattened across all parsed workbooks.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wxplot",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full dataset-tree parse.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		CacheLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "cache_loads_total",
			Help:      "Cache load attempts by serializer format and outcome.",
		}, []string{"format", "outcome"}),
		CacheSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "cache_saves_total",
			Help:      "Cache save attempts by serializer format and outcome.",
		}, []string{"format", "outcome"}),
		CachedFiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wxplot",
			Name:      "cached_files",
			Help:      "Workbook count in the most recently loaded or saved cache blob.",
		}),
		SoundingRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "sounding_requests_total",
			Help:      "Upper-air service requests by outcome.",
		}, []string{"outcome"}),
		SoundingCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wxplot",
			Name:      "sounding_cache_total",
			Help:      "Upper-air cache lookups by result.",
		}, []string{"result"}),
	}
}

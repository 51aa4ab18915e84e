package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry, the HTTP server exposing
// /metrics, and the knowledge-base metrics themselves.
type Metrics struct {
	// Server exposes the /metrics endpoint for scraping.
	Server *http.Server

	// Registry is this service's isolated Prometheus registry.
	Registry *prometheus.Registry

	storeTotal     *prometheus.CounterVec
	storeDuration  *prometheus.HistogramVec
	searchTotal    *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	searchHits     *prometheus.HistogramVec
	cacheTotal     *prometheus.CounterVec
}

// NewMetrics sets up an isolated registry with a constant service label,
// registers the knowledge-base metrics (and optionally the default Go
// runtime collectors), and prepares the /metrics HTTP server.
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,

		storeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_store_total",
			Help: "Total number of knowledge store operations.",
		}, []string{"backend", "status"}),

		storeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "knowledge_store_duration_seconds",
			Help:    "Duration of knowledge store operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),

		searchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "knowledge_search_total",
			Help: "Total number of knowledge search operations.",
		}, []string{"backend", "status"}),

		searchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "knowledge_search_duration_seconds",
			Help:    "Duration of knowledge search operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"backend"}),

		searchHits: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "knowledge_search_hits",
			Help:    "Number of results returned per search.",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"backend"}),

		cacheTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "embedding_cache_total",
			Help: "Embedding cache lookups by result.",
		}, []string{"result"}),
	}

	wrapped.MustRegister(
		m.storeTotal,
		m.storeDuration,
		m.searchTotal,
		m.searchDuration,
		m.searchHits,
		m.cacheTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}

// EmbeddingCacheCounter returns the hit/miss counter consumed by the
// embedding cache.
func (m *Metrics) EmbeddingCacheCounter() *prometheus.CounterVec {
	return m.cacheTotal
}

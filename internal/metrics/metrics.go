// Package metrics exposes Prometheus collectors for the gallery pipelines.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gallery_indexer"

var (
	pagesFetchedTotal    *prometheus.CounterVec
	extractionsTotal     *prometheus.CounterVec
	embeddingsTotal      *prometheus.CounterVec
	linksDiscoveredTotal prometheus.Counter
	pipelineRunsTotal    *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors with the default registry.
// It is safe to call more than once.
func Init() {
	once.Do(func() {
		pagesFetchedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pages_fetched_total",
				Help:      "Total number of page fetches, labeled by fetch status.",
			},
			[]string{"status"},
		)

		extractionsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Total number of page extractions, labeled by parse status.",
			},
			[]string{"status"},
		)

		embeddingsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "embeddings_total",
				Help:      "Total number of embedding attempts, labeled by entity and outcome.",
			},
			[]string{"entity", "status"},
		)

		linksDiscoveredTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "links_discovered_total",
				Help:      "Total number of new links registered from listing pages.",
			},
		)

		pipelineRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pipeline_runs_total",
				Help:      "Total number of finished pipeline runs, labeled by pipeline and status.",
			},
			[]string{"pipeline", "status"},
		)
	})
}

// Handler returns an http.Handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePageFetch counts a finished fetch
func ObservePageFetch(status string) {
	Init()
	pagesFetchedTotal.WithLabelValues(status).Inc()
}

// ObserveExtraction counts a finished extraction
func ObserveExtraction(status string) {
	Init()
	extractionsTotal.WithLabelValues(status).Inc()
}

// ObserveEmbedding counts an embedding attempt
func ObserveEmbedding(entity string, status string) {
	Init()
	embeddingsTotal.WithLabelValues(entity, status).Inc()
}

// ObserveLinksDiscovered adds newly registered links
func ObserveLinksDiscovered(count int) {
	if count <= 0 {
		return
	}
	Init()
	linksDiscoveredTotal.Add(float64(count))
}

// ObservePipelineRun counts a finished pipeline run
func ObservePipelineRun(pipeline string, status string) {
	Init()
	pipelineRunsTotal.WithLabelValues(pipeline, status).Inc()
}

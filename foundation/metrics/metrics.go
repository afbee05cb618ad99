// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "insight_analyses_total",
		Help: "Completed analysis pipeline runs.",
	})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_analysis_duration_seconds",
		Help:    "Wall-clock duration of one pipeline run, enrichment included.",
		Buckets: prometheus.DefBuckets,
	})

	DiarizationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "insight_diarization_failures_total",
		Help: "Diarization calls that failed and aborted an upload.",
	})

	EnrichmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "insight_enrichment_failures_total",
		Help: "Enrichment calls absorbed with fallback values.",
	}, []string{"service"})

	UploadBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "insight_upload_bytes",
		Help:    "Size of uploaded recordings.",
		Buckets: prometheus.ExponentialBuckets(64*1024, 4, 8),
	})
)

// Handler exposes the default registry, for mounting at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Clustering Prometheus metrics.
var (
	ClusteringRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterdex",
			Name:      "clustering_requests_total",
			Help:      "Total number of clustering requests",
		},
		[]string{"algorithm", "status"},
	)

	ClusteringDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clusterdex",
			Name:      "clustering_duration_seconds",
			Help:      "Time spent inside clustering algorithms per language partition",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"algorithm"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "clusterdex",
			Name:      "search_duration_seconds",
			Help:      "Upstream search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	ClustersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterdex",
			Name:      "clusters_total",
			Help:      "Top-level clusters produced by algorithms",
		},
		[]string{"algorithm"},
	)

	UnsupportedLanguageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterdex",
			Name:      "unsupported_language_total",
			Help:      "Language partitions skipped because the language is not supported",
		},
		[]string{"language"},
	)
)

var clusteringMetricsRegistered bool

// RegisterClusteringMetrics registers clustering metrics. Must be called once from main.
func RegisterClusteringMetrics() {
	if clusteringMetricsRegistered {
		return
	}
	prometheus.MustRegister(ClusteringRequestsTotal)
	prometheus.MustRegister(ClusteringDuration)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(ClustersTotal)
	prometheus.MustRegister(UnsupportedLanguageTotal)
	clusteringMetricsRegistered = true
}

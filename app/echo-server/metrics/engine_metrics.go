package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	MatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "matching_search_latency_seconds",
		Help:    "Latency of the contractor matching endpoint",
		Buckets: prometheus.DefBuckets,
	})

	MatchRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "matching_search_requests_total",
		Help: "Total matching search requests served",
	})

	OutcomeIngestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "learning_outcome_ingest_latency_seconds",
		Help:    "Latency of the outcome report ingestion endpoint",
		Buckets: prometheus.DefBuckets,
	})
)

func Init() {
	prometheus.MustRegister(MatchDuration, MatchRequestsTotal, OutcomeIngestDuration)
}

package matching

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	MatchesServedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_results_served_total",
			Help: "Count of contractor matches returned across all search calls.",
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matching_cache_hits_total",
			Help: "Count of match searches answered from the result cache.",
		},
	)
)

func init() {
	prometheus.MustRegister(MatchesServedTotal, CacheHitsTotal)
}

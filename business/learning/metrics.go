package learning

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OutcomeReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_outcome_reports_total",
			Help: "Count of accepted outcome reports by event type.",
		},
		[]string{"event_type"},
	)

	InsightsEmittedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_insights_emitted_total",
			Help: "Count of stored learning insights by insight type.",
		},
		[]string{"insight_type"},
	)

	PatternUpsertFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_pattern_upsert_failures_total",
			Help: "Count of outcome reports accepted without a pattern update.",
		},
	)
)

func init() {
	prometheus.MustRegister(OutcomeReportsTotal, InsightsEmittedTotal, PatternUpsertFailures)
}

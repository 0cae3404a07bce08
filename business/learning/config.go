package learning

// Thresholds and seeds of the learning engine. They encode existing
// downstream behavior; do not tune without migrating the consumers.
const (
	// a report counts as a success when the overall rating reaches this
	successRatingFloor = 4.0

	// insights only fire on strongly positive outcomes
	insightRatingFloor = 4.5

	// |budget variance| below this (percentage points) counts as on-budget
	budgetVarianceBand = 5.0

	// service_combination insights need more services than this
	comboMinServices = 3

	// confidence is min(1, sampleSize/confidenceSaturation). A sample-count
	// heuristic, not a calibrated interval.
	confidenceSaturation = 10

	// confidence assigned to a brand-new pattern
	seedConfidence = 0.1

	// static insight confidences, not derived from the statistics
	comboInsightConfidence  = 0.8
	budgetInsightConfidence = 0.7

	// pattern upsert attempts before the report is accepted without one
	upsertAttempts = 3

	// default trailing window for the read endpoints
	defaultWindowDays = 90
)

package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.service_patterns (
//     id                  BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     event_type          TEXT NOT NULL,
//     service_combination TEXT NOT NULL,
//     success_rate        NUMERIC NOT NULL,
//     average_rating      NUMERIC NOT NULL,
//     sample_size         INTEGER NOT NULL,
//     confidence_level    NUMERIC NOT NULL,
//     created_at          TIMESTAMPTZ DEFAULT NOW(),
//     updated_at          TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (event_type, service_combination)
// );

// ServicePattern is the running aggregate for one (event type, canonical
// service combination) key. It is created on the first outcome report for
// the key and mutated in place by every later one; only the learning
// engine writes it.
type ServicePattern struct {
	ID                 uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType          string    `gorm:"column:event_type;uniqueIndex:idx_service_patterns_key" json:"event_type"`
	ServiceCombination string    `gorm:"column:service_combination;uniqueIndex:idx_service_patterns_key" json:"service_combination"`
	SuccessRate        float64   `gorm:"column:success_rate;type:numeric" json:"success_rate"`
	AverageRating      float64   `gorm:"column:average_rating;type:numeric" json:"average_rating"`
	SampleSize         int       `gorm:"column:sample_size" json:"sample_size"`
	ConfidenceLevel    float64   `gorm:"column:confidence_level;type:numeric" json:"confidence_level"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ServicePattern) TableName() string {
	return "service_patterns"
}

// PatternSample is one observation folded into a ServicePattern. Success is
// precomputed by the learning engine so the success-rating threshold lives
// in exactly one place.
type PatternSample struct {
	EventType          string
	ServiceCombination string
	OverallRating      float64
	Success            bool
}

const (
	InsightServiceCombination = "service_combination"
	InsightBudgetOptimization = "budget_optimization"
	InsightTimeline           = "timeline_insight"
	InsightVendorPerformance  = "vendor_performance"
)

// LearningInsight is an append-only derived record. Confidence values are
// fixed per insight type, not computed from the pattern statistics.
type LearningInsight struct {
	ID          string            `gorm:"primaryKey;type:uuid" json:"id"`
	EventType   string            `gorm:"column:event_type" json:"event_type"`
	InsightType string            `gorm:"column:insight_type" json:"insight_type"`
	Title       string            `gorm:"column:title;type:text" json:"title"`
	Description string            `gorm:"column:description;type:text" json:"description"`
	Data        datatypes.JSONMap `gorm:"column:data;type:jsonb" json:"data"`
	Confidence  float64           `gorm:"column:confidence;type:numeric" json:"confidence"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LearningInsight) TableName() string {
	return "learning_insights"
}

// SuccessMetrics is the measured outcome of a finished event.
type SuccessMetrics struct {
	OverallRating        float64            `json:"overall_rating"`
	BudgetVariance       float64            `json:"budget_variance"`
	TimelineAdherence    float64            `json:"timeline_adherence"`
	AttendeeSatisfaction *float64           `json:"attendee_satisfaction,omitempty"`
	VendorRatings        map[string]float64 `json:"vendor_ratings,omitempty"`
}

// OutcomeReport is the post-event submission. Ephemeral; the raw row that
// gets persisted is OutcomeRecord.
type OutcomeReport struct {
	EventID       string         `json:"event_id"`
	EventType     string         `json:"event_type"`
	AttendeeCount int            `json:"attendee_count"`
	Budget        float64        `json:"budget"`
	ServicesUsed  []string       `json:"services_used"`
	Metrics       SuccessMetrics `json:"metrics"`
	Feedback      string         `json:"feedback,omitempty"`
}

// OutcomeRecord is the durable copy of an outcome report. Writing it is the
// acceptance boundary of the ingest endpoint: pattern and insight updates
// are best-effort after it.
type OutcomeRecord struct {
	ID                   string                      `gorm:"primaryKey;type:uuid" json:"id"`
	EventID              string                      `gorm:"column:event_id;index" json:"event_id"`
	EventType            string                      `gorm:"column:event_type;index" json:"event_type"`
	AttendeeCount        int                         `gorm:"column:attendee_count" json:"attendee_count"`
	Budget               float64                     `gorm:"column:budget;type:numeric" json:"budget"`
	ServicesUsed         datatypes.JSONSlice[string] `gorm:"column:services_used;type:jsonb" json:"services_used"`
	OverallRating        float64                     `gorm:"column:overall_rating;type:numeric" json:"overall_rating"`
	BudgetVariance       float64                     `gorm:"column:budget_variance;type:numeric" json:"budget_variance"`
	TimelineAdherence    float64                     `gorm:"column:timeline_adherence;type:numeric" json:"timeline_adherence"`
	AttendeeSatisfaction *float64                    `gorm:"column:attendee_satisfaction;type:numeric" json:"attendee_satisfaction,omitempty"`
	VendorRatings        datatypes.JSONMap           `gorm:"column:vendor_ratings;type:jsonb" json:"vendor_ratings,omitempty"`
	Feedback             string                      `gorm:"column:feedback;type:text" json:"feedback,omitempty"`
	CreatedAt            time.Time                   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OutcomeRecord) TableName() string {
	return "event_outcomes"
}

// RecordOutcomeResult reports what the learning engine managed to derive
// from one report. Insights holds only the ones that were stored.
type RecordOutcomeResult struct {
	PatternUpdated bool              `json:"pattern_updated"`
	Insights       []LearningInsight `json:"insights"`
}

// BudgetVarianceStats is the per-event-type reduction in OutcomeSummary.
type BudgetVarianceStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// OutcomeSummary is a read-time reduction over the raw outcome rows in a
// trailing window.
type OutcomeSummary struct {
	EventCount     int                            `json:"event_count"`
	AverageRating  float64                        `json:"average_rating"`
	SuccessRate    float64                        `json:"success_rate"`
	BudgetVariance map[string]BudgetVarianceStats `json:"budget_variance_by_event_type"`
}

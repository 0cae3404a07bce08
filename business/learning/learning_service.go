package learning

import (
	"context"
	"fmt"
	"sort"
	"time"

	"eventify/domain"
	"eventify/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ---- Repository interfaces ----

// PatternStore folds samples into service_patterns. Upsert must be atomic
// per (event type, service combination) key: concurrent samples for the
// same key may never lose an increment. The postgres implementation does
// this with a single INSERT .. ON CONFLICT statement.
type PatternStore interface {
	Upsert(ctx context.Context, sample domain.PatternSample) (domain.ServicePattern, error)
	Find(ctx context.Context, eventType string, since time.Time) ([]domain.ServicePattern, error)
}

// InsightStore appends and reads learning_insights rows.
type InsightStore interface {
	Append(ctx context.Context, insight *domain.LearningInsight) error
	Find(ctx context.Context, eventType string, since time.Time) ([]domain.LearningInsight, error)
}

// OutcomeStore persists the raw outcome reports.
type OutcomeStore interface {
	Create(ctx context.Context, record *domain.OutcomeRecord) error
	FindSince(ctx context.Context, since time.Time) ([]domain.OutcomeRecord, error)
}

// ---- Usecase / Service ----

type LearningService struct {
	patterns PatternStore
	insights InsightStore
	outcomes OutcomeStore
}

func NewLearningService(
	patterns PatternStore,
	insights InsightStore,
	outcomes OutcomeStore,
) *LearningService {
	return &LearningService{
		patterns: patterns,
		insights: insights,
		outcomes: outcomes,
	}
}

// RecordOutcome ingests one outcome report. The raw record write is the
// acceptance boundary: its failure fails the call. The pattern upsert and
// insight inserts after it are best-effort and only logged; the caller has
// already been promised durability of the report itself.
func (s *LearningService) RecordOutcome(
	ctx context.Context,
	report domain.OutcomeReport,
) (domain.RecordOutcomeResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.RecordOutcomeResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validateReport(report); err != nil {
		return domain.RecordOutcomeResult{}, err
	}

	record := recordFromReport(report)
	if err := s.outcomes.Create(ctx, &record); err != nil {
		return domain.RecordOutcomeResult{}, fmt.Errorf("%w: store outcome report: %v", domain.ErrUpstreamUnavailable, err)
	}

	OutcomeReportsTotal.WithLabelValues(report.EventType).Inc()

	result := domain.RecordOutcomeResult{
		Insights: []domain.LearningInsight{},
	}

	sample := domain.PatternSample{
		EventType:          report.EventType,
		ServiceCombination: CombinationKey(report.ServicesUsed),
		OverallRating:      report.Metrics.OverallRating,
		Success:            report.Metrics.OverallRating >= successRatingFloor,
	}

	pattern, err := s.upsertPattern(ctx, sample)
	if err != nil {
		PatternUpsertFailures.Inc()
		logger.Error("pattern update dropped",
			"event_type", sample.EventType,
			"service_combination", sample.ServiceCombination,
			"error", err,
		)
	} else {
		result.PatternUpdated = true
		logger.Debug("pattern updated",
			"event_type", pattern.EventType,
			"service_combination", pattern.ServiceCombination,
			"sample_size", pattern.SampleSize,
			"success_rate", pattern.SuccessRate,
			"confidence_level", pattern.ConfidenceLevel,
		)
	}

	for _, insight := range buildInsights(report) {
		if err := s.insights.Append(ctx, &insight); err != nil {
			logger.Error("insight dropped",
				"event_type", insight.EventType,
				"insight_type", insight.InsightType,
				"error", err,
			)
			continue
		}
		InsightsEmittedTotal.WithLabelValues(insight.InsightType).Inc()
		result.Insights = append(result.Insights, insight)
	}

	return result, nil
}

// upsertPattern retries a bounded number of times; the store itself is
// atomic per key, retries only cover transient connectivity errors.
func (s *LearningService) upsertPattern(
	ctx context.Context,
	sample domain.PatternSample,
) (domain.ServicePattern, error) {

	var lastErr error
	for attempt := 1; attempt <= upsertAttempts; attempt++ {
		pattern, err := s.patterns.Upsert(ctx, sample)
		if err == nil {
			return pattern, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}

	return domain.ServicePattern{}, fmt.Errorf("upsert service pattern: %w", lastErr)
}

func validateReport(report domain.OutcomeReport) error {
	if report.EventType == "" {
		return fmt.Errorf("%w: event_type is required", domain.ErrInvalidInput)
	}
	if len(report.ServicesUsed) == 0 {
		return fmt.Errorf("%w: services_used is required", domain.ErrInvalidInput)
	}
	if report.Metrics.OverallRating < 1 || report.Metrics.OverallRating > 5 {
		return fmt.Errorf("%w: overall_rating must be within [1,5]", domain.ErrInvalidInput)
	}
	return nil
}

func recordFromReport(report domain.OutcomeReport) domain.OutcomeRecord {
	vendorRatings := datatypes.JSONMap{}
	for vendor, rating := range report.Metrics.VendorRatings {
		vendorRatings[vendor] = rating
	}

	return domain.OutcomeRecord{
		ID:                   uuid.NewString(),
		EventID:              report.EventID,
		EventType:            report.EventType,
		AttendeeCount:        report.AttendeeCount,
		Budget:               report.Budget,
		ServicesUsed:         datatypes.NewJSONSlice(report.ServicesUsed),
		OverallRating:        report.Metrics.OverallRating,
		BudgetVariance:       report.Metrics.BudgetVariance,
		TimelineAdherence:    report.Metrics.TimelineAdherence,
		AttendeeSatisfaction: report.Metrics.AttendeeSatisfaction,
		VendorRatings:        vendorRatings,
		Feedback:             report.Feedback,
	}
}

// ---- Query surface ----

// QueryPatterns returns the patterns touched in the trailing window,
// descending by success rate.
func (s *LearningService) QueryPatterns(
	ctx context.Context,
	eventType string,
	sinceDays int,
) ([]domain.ServicePattern, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	patterns, err := s.patterns.Find(ctx, eventType, windowStart(sinceDays))
	if err != nil {
		return nil, fmt.Errorf("%w: query service patterns: %v", domain.ErrUpstreamUnavailable, err)
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].SuccessRate > patterns[j].SuccessRate
	})

	return patterns, nil
}

// QueryInsights returns the insights emitted in the trailing window,
// descending by confidence.
func (s *LearningService) QueryInsights(
	ctx context.Context,
	eventType string,
	sinceDays int,
) ([]domain.LearningInsight, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	insights, err := s.insights.Find(ctx, eventType, windowStart(sinceDays))
	if err != nil {
		return nil, fmt.Errorf("%w: query learning insights: %v", domain.ErrUpstreamUnavailable, err)
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Confidence > insights[j].Confidence
	})

	return insights, nil
}

func windowStart(sinceDays int) time.Time {
	if sinceDays <= 0 {
		sinceDays = defaultWindowDays
	}
	return time.Now().AddDate(0, 0, -sinceDays)
}

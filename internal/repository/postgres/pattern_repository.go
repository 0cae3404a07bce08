package postgres

import (
	"context"
	"fmt"
	"time"

	"eventify/business/learning"
	"eventify/domain"

	"gorm.io/gorm"
)

type ServicePatternRepository struct {
	DB *gorm.DB
}

var _ learning.PatternStore = (*ServicePatternRepository)(nil)

func NewServicePatternRepository(db *gorm.DB) *ServicePatternRepository {
	return &ServicePatternRepository{DB: db}
}

// Running means and the confidence heuristic (min(1, n/10), 0.1 seed for a
// new row) are computed server-side so concurrent samples for the same key
// serialize on the row and no increment is ever lost.
const upsertPatternSQL = `
INSERT INTO service_patterns
    (event_type, service_combination, success_rate, average_rating, sample_size, confidence_level, created_at, updated_at)
VALUES (?, ?, ?, ?, 1, 0.1, NOW(), NOW())
ON CONFLICT (event_type, service_combination) DO UPDATE SET
    average_rating   = (service_patterns.average_rating * service_patterns.sample_size + EXCLUDED.average_rating)
                       / (service_patterns.sample_size + 1),
    success_rate     = (service_patterns.success_rate * service_patterns.sample_size + EXCLUDED.success_rate)
                       / (service_patterns.sample_size + 1),
    sample_size      = service_patterns.sample_size + 1,
    confidence_level = LEAST(1.0, (service_patterns.sample_size + 1) / 10.0),
    updated_at       = NOW()
RETURNING *`

func (r *ServicePatternRepository) Upsert(ctx context.Context, sample domain.PatternSample) (domain.ServicePattern, error) {
	if err := ctx.Err(); err != nil {
		return domain.ServicePattern{}, fmt.Errorf("context error: %w", err)
	}

	success := 0.0
	if sample.Success {
		success = 1.0
	}

	var pattern domain.ServicePattern
	err := r.DB.WithContext(ctx).
		Raw(upsertPatternSQL, sample.EventType, sample.ServiceCombination, success, sample.OverallRating).
		Scan(&pattern).Error
	if err != nil {
		return domain.ServicePattern{}, fmt.Errorf("failed to upsert service_patterns: %w", err)
	}

	return pattern, nil
}

func (r *ServicePatternRepository) Find(ctx context.Context, eventType string, since time.Time) ([]domain.ServicePattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("updated_at >= ?", since)
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	var patterns []domain.ServicePattern
	if err := q.Order("success_rate DESC").Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("failed to query service_patterns: %w", err)
	}

	return patterns, nil
}

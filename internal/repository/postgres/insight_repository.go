package postgres

import (
	"context"
	"fmt"
	"time"

	"eventify/business/learning"
	"eventify/domain"

	"gorm.io/gorm"
)

type LearningInsightRepository struct {
	DB *gorm.DB
}

var _ learning.InsightStore = (*LearningInsightRepository)(nil)

func NewLearningInsightRepository(db *gorm.DB) *LearningInsightRepository {
	return &LearningInsightRepository{DB: db}
}

// Append inserts one insight row. Rows are never updated or deleted.
func (r *LearningInsightRepository) Append(ctx context.Context, insight *domain.LearningInsight) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(insight).Error; err != nil {
		return fmt.Errorf("failed to insert learning insight: %w", err)
	}

	return nil
}

func (r *LearningInsightRepository) Find(ctx context.Context, eventType string, since time.Time) ([]domain.LearningInsight, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	q := r.DB.WithContext(ctx).Where("created_at >= ?", since)
	if eventType != "" {
		q = q.Where("event_type = ?", eventType)
	}

	var insights []domain.LearningInsight
	if err := q.Order("confidence DESC").Find(&insights).Error; err != nil {
		return nil, fmt.Errorf("failed to query learning_insights: %w", err)
	}

	return insights, nil
}

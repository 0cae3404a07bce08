package postgres

import (
	"context"
	"fmt"
	"time"

	"eventify/business/learning"
	"eventify/domain"

	"gorm.io/gorm"
)

type OutcomeRepository struct {
	DB *gorm.DB
}

var _ learning.OutcomeStore = (*OutcomeRepository)(nil)

func NewOutcomeRepository(db *gorm.DB) *OutcomeRepository {
	return &OutcomeRepository{DB: db}
}

func (r *OutcomeRepository) Create(ctx context.Context, record *domain.OutcomeRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to store outcome report: %w", err)
	}

	return nil
}

func (r *OutcomeRepository) FindSince(ctx context.Context, since time.Time) ([]domain.OutcomeRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var records []domain.OutcomeRecord
	err := r.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query event_outcomes: %w", err)
	}

	return records, nil
}

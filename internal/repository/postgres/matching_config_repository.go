package postgres

import (
	"context"
	"errors"
	"fmt"

	"eventify/business/matching"
	"eventify/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchingConfigRepository struct {
	DB *gorm.DB
}

var _ matching.ConfigRepository = (*MatchingConfigRepository)(nil)

func NewMatchingConfigRepository(db *gorm.DB) *MatchingConfigRepository {
	return &MatchingConfigRepository{DB: db}
}

func (r *MatchingConfigRepository) GetConfig(ctx context.Context, name string) (domain.MatchingConfig, bool, error) {
	var cfg domain.MatchingConfig

	err := r.DB.WithContext(ctx).
		Where("name = ?", name).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.MatchingConfig{}, false, nil
	}
	if err != nil {
		return domain.MatchingConfig{}, false, fmt.Errorf("failed to query matching_configs: %w", err)
	}

	return cfg, true, nil
}

func (r *MatchingConfigRepository) UpsertConfig(ctx context.Context, cfg domain.MatchingConfig) error {
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"base_score",
				"w_category",
				"w_rating",
				"w_review_volume",
				"verified_bonus",
				"w_tier",
				"review_cap",
				"max_results",
				"updated_at",
			}),
		}).
		Create(&cfg).Error
}

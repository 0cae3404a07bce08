package postgres

import (
	"context"
	"fmt"

	"eventify/domain"

	"gorm.io/gorm"
)

type ProviderRepository struct {
	DB *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{DB: db}
}

// FindEligible returns the providers the matching engine may consider:
// active, role-verified, not suspended, with at least one declared
// category. Ordered by id so repeated calls rank ties identically.
func (r *ProviderRepository) FindEligible(ctx context.Context) ([]domain.Provider, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var providers []domain.Provider
	err := r.DB.WithContext(ctx).
		Preload("Offerings").
		Where("status = ?", domain.ProviderStatusActive).
		Where("role_verified = ?", true).
		Where("suspended = ?", false).
		Where("categories IS NOT NULL AND jsonb_array_length(categories) > 0").
		Order("id").
		Find(&providers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find eligible providers: %w", err)
	}

	return providers, nil
}

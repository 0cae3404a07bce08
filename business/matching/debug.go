package matching

import (
	"context"
	"fmt"

	"eventify/domain"
	"eventify/pkg/logger"
)

// ExplainMatch runs the same pipeline as Match but returns the raw score
// components per surviving provider, unsorted and uncapped. Never cached.
func (s *MatchingService) ExplainMatch(
	ctx context.Context,
	requirements []domain.ServiceRequirement,
) ([]domain.MatchExplanation, error) {

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories := normalizeCategories(requirements)
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no service categories to match", domain.ErrInvalidInput)
	}

	providers, err := s.catalog.FindEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load provider catalog: %v", domain.ErrUpstreamUnavailable, err)
	}

	cfg := s.loadConfig(ctx)

	logger.Debug("matching_explain",
		"categories", categories,
		"eligible_providers", len(providers),
	)

	out := make([]domain.MatchExplanation, 0, len(providers))
	for _, p := range providers {
		matched := matchedCategories(p, categories)
		if len(matched) == 0 {
			continue
		}

		bonus := 0.0
		if p.Verified {
			bonus = cfg.VerifiedBonus
		}

		out = append(out, domain.MatchExplanation{
			ProviderID:        p.ID,
			ProviderName:      p.DisplayName,
			MatchedCategories: matched,
			OverlapRatio:      overlapRatio(len(matched), len(categories)),
			RatingComponent:   cfg.WRating * ratingScore(p.Rating),
			ReviewComponent:   cfg.WReviewVolume * reviewVolumeScore(cfg, p.ReviewCount),
			TierComponent:     cfg.WTier * tierScore(cfg, p.SubscriptionTier),
			VerifiedBonus:     bonus,
			FinalScore:        scoreProvider(cfg, p, len(matched), len(categories)),
		})
	}

	return out, nil
}

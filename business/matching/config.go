package matching

import (
	"context"

	"eventify/domain"
)

// Scoring weights. These encode the behavior downstream consumers already
// rely on; change them through the matching_configs table, not here.
const (
	defaultBaseScore     = 0.5
	defaultWCategory     = 0.40
	defaultWRating       = 0.20
	defaultWReviewVolume = 0.10
	defaultVerifiedBonus = 0.10
	defaultWTier         = 0.20

	defaultReviewCap  = 100.0
	defaultMaxResults = 10

	defaultTierScore = 0.4

	// name of the singleton row in matching_configs
	ConfigName = "default"
)

type Config struct {
	BaseScore     float64
	WCategory     float64
	WRating       float64
	WReviewVolume float64
	VerifiedBonus float64
	WTier         float64

	// review counts at or above ReviewCap score the full review component
	ReviewCap  float64
	MaxResults int

	TierScores       map[string]float64
	DefaultTierScore float64
}

func DefaultConfig() Config {
	return Config{
		BaseScore:     defaultBaseScore,
		WCategory:     defaultWCategory,
		WRating:       defaultWRating,
		WReviewVolume: defaultWReviewVolume,
		VerifiedBonus: defaultVerifiedBonus,
		WTier:         defaultWTier,

		ReviewCap:  defaultReviewCap,
		MaxResults: defaultMaxResults,

		TierScores: map[string]float64{
			domain.TierEnterprise:   1.0,
			domain.TierProfessional: 0.7,
			domain.TierEssential:    0.4,
		},
		DefaultTierScore: defaultTierScore,
	}
}

// ConfigRepository reads the admin-editable weight override from the DB.
type ConfigRepository interface {
	GetConfig(ctx context.Context, name string) (domain.MatchingConfig, bool, error)
	UpsertConfig(ctx context.Context, cfg domain.MatchingConfig) error
}

// loadConfig overlays the stored override (if any) on the defaults.
func (s *MatchingService) loadConfig(ctx context.Context) Config {
	if s.cfgRepo == nil {
		return s.defaultCfg
	}

	dbCfg, ok, err := s.cfgRepo.GetConfig(ctx, ConfigName)
	if err != nil || !ok {
		return s.defaultCfg
	}

	cfg := s.defaultCfg
	cfg.BaseScore = dbCfg.BaseScore
	cfg.WCategory = dbCfg.WCategory
	cfg.WRating = dbCfg.WRating
	cfg.WReviewVolume = dbCfg.WReviewVolume
	cfg.VerifiedBonus = dbCfg.VerifiedBonus
	cfg.WTier = dbCfg.WTier

	if dbCfg.ReviewCap > 0 {
		cfg.ReviewCap = dbCfg.ReviewCap
	}
	if dbCfg.MaxResults > 0 {
		cfg.MaxResults = dbCfg.MaxResults
	}

	return cfg
}

package domain

import "time"

// MatchingConfig is an admin-editable override of the scoring weights.
// The matching engine falls back to its compiled-in defaults when no row
// exists for the requested name.
type MatchingConfig struct {
	Name string `json:"name" gorm:"column:name;primaryKey"`

	BaseScore     float64 `json:"base_score" gorm:"column:base_score"`
	WCategory     float64 `json:"w_category" gorm:"column:w_category"`
	WRating       float64 `json:"w_rating" gorm:"column:w_rating"`
	WReviewVolume float64 `json:"w_review_volume" gorm:"column:w_review_volume"`
	VerifiedBonus float64 `json:"verified_bonus" gorm:"column:verified_bonus"`
	WTier         float64 `json:"w_tier" gorm:"column:w_tier"`
	ReviewCap     float64 `json:"review_cap" gorm:"column:review_cap"`
	MaxResults    int     `json:"max_results" gorm:"column:max_results"`

	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (MatchingConfig) TableName() string {
	return "matching_configs"
}

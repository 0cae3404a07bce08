package domain

// ServiceRequirement is one requested service category in a matching call.
// Priority and budget are client hints; they are carried through for logging
// and analytics but do not change the score.
type ServiceRequirement struct {
	Category        string  `json:"category"`
	Priority        string  `json:"priority,omitempty"`
	EstimatedBudget float64 `json:"estimated_budget,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ContractorMatch is one ranked result of a matching call. Not persisted.
type ContractorMatch struct {
	ProviderID          uint64     `json:"provider_id"`
	ProviderName        string     `json:"provider_name"`
	ServiceCategory     string     `json:"service_category"`
	Score               float64    `json:"score"`
	EstimatedPriceRange PriceRange `json:"estimated_price_range"`
	Available           bool       `json:"available"`
	Rating              float64    `json:"rating"`
	ReviewCount         int        `json:"review_count"`
}

// MatchExplanation carries the per-provider score components for the debug
// endpoint.
type MatchExplanation struct {
	ProviderID        uint64   `json:"provider_id"`
	ProviderName      string   `json:"provider_name"`
	MatchedCategories []string `json:"matched_categories"`
	OverlapRatio      float64  `json:"overlap_ratio"`
	RatingComponent   float64  `json:"rating_component"`
	ReviewComponent   float64  `json:"review_component"`
	TierComponent     float64  `json:"tier_component"`
	VerifiedBonus     float64  `json:"verified_bonus"`
	FinalScore        float64  `json:"final_score"`
}

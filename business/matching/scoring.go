package matching

import (
	"math"

	"eventify/domain"
)

// scoreProvider computes the weighted composite score, capped at 1.0 and
// rounded to two decimals:
//
//	base + wCategory*overlap + wRating*(rating/5) + wReviewVolume*min(reviews/cap, 1)
//	     + verifiedBonus (if verified) + wTier*tierScore
func scoreProvider(cfg Config, p domain.Provider, matchedCount, requestedCount int) float64 {
	score := cfg.BaseScore

	score += cfg.WCategory * overlapRatio(matchedCount, requestedCount)
	score += cfg.WRating * ratingScore(p.Rating)
	score += cfg.WReviewVolume * reviewVolumeScore(cfg, p.ReviewCount)
	if p.Verified {
		score += cfg.VerifiedBonus
	}
	score += cfg.WTier * tierScore(cfg, p.SubscriptionTier)

	if score > 1.0 {
		score = 1.0
	}

	return roundScore(score)
}

func overlapRatio(matchedCount, requestedCount int) float64 {
	if requestedCount == 0 {
		return 0
	}
	return float64(matchedCount) / float64(requestedCount)
}

func ratingScore(rating float64) float64 {
	return rating / 5.0
}

func reviewVolumeScore(cfg Config, reviewCount int) float64 {
	v := float64(reviewCount) / cfg.ReviewCap
	if v > 1.0 {
		v = 1.0
	}
	return v
}

func tierScore(cfg Config, tier string) float64 {
	if v, ok := cfg.TierScores[tier]; ok {
		return v
	}
	return cfg.DefaultTierScore
}

func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

package learning

import (
	"context"
	"fmt"
	"sort"

	"eventify/domain"
)

// Summary reduces the raw outcome rows in the trailing window: event count,
// mean rating, mean success rate, and per-event-type mean/median budget
// variance. Pure read-time computation; nothing here feeds back into the
// patterns.
func (s *LearningService) Summary(
	ctx context.Context,
	sinceDays int,
) (domain.OutcomeSummary, error) {

	if err := ctx.Err(); err != nil {
		return domain.OutcomeSummary{}, fmt.Errorf("context error: %w", err)
	}

	records, err := s.outcomes.FindSince(ctx, windowStart(sinceDays))
	if err != nil {
		return domain.OutcomeSummary{}, fmt.Errorf("%w: load outcome reports: %v", domain.ErrUpstreamUnavailable, err)
	}

	summary := domain.OutcomeSummary{
		EventCount:     len(records),
		BudgetVariance: map[string]domain.BudgetVarianceStats{},
	}
	if len(records) == 0 {
		return summary, nil
	}

	var (
		ratingSum float64
		successes int
		variances = map[string][]float64{}
	)
	for _, r := range records {
		ratingSum += r.OverallRating
		if r.OverallRating >= successRatingFloor {
			successes++
		}
		variances[r.EventType] = append(variances[r.EventType], r.BudgetVariance)
	}

	summary.AverageRating = ratingSum / float64(len(records))
	summary.SuccessRate = float64(successes) / float64(len(records))

	for eventType, vs := range variances {
		summary.BudgetVariance[eventType] = domain.BudgetVarianceStats{
			Mean:   mean(vs),
			Median: median(vs),
		}
	}

	return summary, nil
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}

	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

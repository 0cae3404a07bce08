package learning

import (
	"fmt"
	"math"
	"strings"

	"eventify/domain"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Typed payload per insight type; persisted as the jsonb data column.

type serviceCombinationData struct {
	Services       []string
	OverallRating  float64
	BudgetVariance float64
}

func (d serviceCombinationData) payload() datatypes.JSONMap {
	return datatypes.JSONMap{
		"services":        d.Services,
		"overall_rating":  d.OverallRating,
		"budget_variance": d.BudgetVariance,
	}
}

type budgetOptimizationData struct {
	Services       []string
	BudgetVariance float64
}

func (d budgetOptimizationData) payload() datatypes.JSONMap {
	return datatypes.JSONMap{
		"services":        d.Services,
		"budget_variance": d.BudgetVariance,
	}
}

// buildInsights evaluates the emission rules against one report. The two
// conditions are independent: a report can produce zero, one, or both
// insights. Confidence values are fixed constants.
func buildInsights(report domain.OutcomeReport) []domain.LearningInsight {
	var out []domain.LearningInsight

	rating := report.Metrics.OverallRating
	if rating < insightRatingFloor {
		return out
	}

	if len(report.ServicesUsed) > comboMinServices {
		data := serviceCombinationData{
			Services:       report.ServicesUsed,
			OverallRating:  rating,
			BudgetVariance: report.Metrics.BudgetVariance,
		}
		out = append(out, domain.LearningInsight{
			ID:          uuid.NewString(),
			EventType:   report.EventType,
			InsightType: domain.InsightServiceCombination,
			Title:       fmt.Sprintf("Winning service combination for %s events", report.EventType),
			Description: fmt.Sprintf(
				"The combination %s was rated %.1f/5 by the organizer.",
				strings.Join(report.ServicesUsed, ", "), rating,
			),
			Data:       data.payload(),
			Confidence: comboInsightConfidence,
		})
	}

	if math.Abs(report.Metrics.BudgetVariance) < budgetVarianceBand {
		data := budgetOptimizationData{
			Services:       report.ServicesUsed,
			BudgetVariance: report.Metrics.BudgetVariance,
		}
		out = append(out, domain.LearningInsight{
			ID:          uuid.NewString(),
			EventType:   report.EventType,
			InsightType: domain.InsightBudgetOptimization,
			Title:       fmt.Sprintf("On-budget delivery for %s events", report.EventType),
			Description: fmt.Sprintf(
				"Delivered within %.1f%% of the planned budget with a %.1f/5 rating.",
				math.Abs(report.Metrics.BudgetVariance), rating,
			),
			Data:       data.payload(),
			Confidence: budgetInsightConfidence,
		})
	}

	return out
}

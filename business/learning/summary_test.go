package learning

import (
	"context"
	"testing"

	"eventify/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outcomeRecord(eventType string, rating, variance float64) domain.OutcomeRecord {
	return domain.OutcomeRecord{
		EventType:      eventType,
		OverallRating:  rating,
		BudgetVariance: variance,
	}
}

func TestSummary_AggregatesPerEventType(t *testing.T) {
	svc, _, _, outcomes := newTestService()
	outcomes.records = []domain.OutcomeRecord{
		outcomeRecord("wedding", 5, 10),
		outcomeRecord("wedding", 4, -6),
		outcomeRecord("wedding", 3, 2),
		outcomeRecord("conference", 4.5, 8),
		outcomeRecord("conference", 2, 12),
	}

	summary, err := svc.Summary(context.Background(), 30)
	require.NoError(t, err)

	assert.Equal(t, 5, summary.EventCount)
	assert.InDelta(t, (5+4+3+4.5+2)/5.0, summary.AverageRating, 1e-9)
	assert.InDelta(t, 3.0/5.0, summary.SuccessRate, 1e-9)

	wedding := summary.BudgetVariance["wedding"]
	assert.InDelta(t, 2.0, wedding.Mean, 1e-9)
	assert.InDelta(t, 2.0, wedding.Median, 1e-9)

	conference := summary.BudgetVariance["conference"]
	assert.InDelta(t, 10.0, conference.Mean, 1e-9)
	assert.InDelta(t, 10.0, conference.Median, 1e-9)
}

func TestSummary_EvenCountMedianIsMidpoint(t *testing.T) {
	svc, _, _, outcomes := newTestService()
	outcomes.records = []domain.OutcomeRecord{
		outcomeRecord("gala", 4, 1),
		outcomeRecord("gala", 4, 9),
		outcomeRecord("gala", 4, 3),
		outcomeRecord("gala", 4, 7),
	}

	summary, err := svc.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, summary.BudgetVariance["gala"].Median, 1e-9)
}

func TestSummary_EmptyWindow(t *testing.T) {
	svc, _, _, _ := newTestService()

	summary, err := svc.Summary(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.EventCount)
	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.SuccessRate)
	assert.Empty(t, summary.BudgetVariance)
}

func TestSummary_StoreFailure(t *testing.T) {
	svc, _, _, outcomes := newTestService()
	outcomes.err = assert.AnError

	_, err := svc.Summary(context.Background(), 30)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

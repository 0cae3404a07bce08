package learning

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"eventify/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fakes
// ==========================

// fakePatternStore mirrors the semantics of the postgres ON CONFLICT
// statement: one atomic read-modify-write per key.
type fakePatternStore struct {
	mu       sync.Mutex
	patterns map[string]*domain.ServicePattern
	err      error
}

func newFakePatternStore() *fakePatternStore {
	return &fakePatternStore{patterns: make(map[string]*domain.ServicePattern)}
}

func (f *fakePatternStore) Upsert(ctx context.Context, sample domain.PatternSample) (domain.ServicePattern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return domain.ServicePattern{}, f.err
	}

	success := 0.0
	if sample.Success {
		success = 1.0
	}

	key := sample.EventType + "|" + sample.ServiceCombination
	p, ok := f.patterns[key]
	if !ok {
		p = &domain.ServicePattern{
			EventType:          sample.EventType,
			ServiceCombination: sample.ServiceCombination,
			SuccessRate:        success,
			AverageRating:      sample.OverallRating,
			SampleSize:         1,
			ConfidenceLevel:    seedConfidence,
			CreatedAt:          time.Now(),
			UpdatedAt:          time.Now(),
		}
		f.patterns[key] = p
		return *p, nil
	}

	n := float64(p.SampleSize)
	p.AverageRating = (p.AverageRating*n + sample.OverallRating) / (n + 1)
	p.SuccessRate = (p.SuccessRate*n + success) / (n + 1)
	p.SampleSize++
	p.ConfidenceLevel = float64(p.SampleSize) / confidenceSaturation
	if p.ConfidenceLevel > 1 {
		p.ConfidenceLevel = 1
	}
	p.UpdatedAt = time.Now()

	return *p, nil
}

func (f *fakePatternStore) Find(ctx context.Context, eventType string, since time.Time) ([]domain.ServicePattern, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}

	var out []domain.ServicePattern
	for _, p := range f.patterns {
		if eventType != "" && p.EventType != eventType {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatternStore) get(eventType, combination string) domain.ServicePattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.patterns[eventType+"|"+combination]
}

type fakeInsightStore struct {
	mu       sync.Mutex
	appended []domain.LearningInsight
	err      error
}

func (f *fakeInsightStore) Append(ctx context.Context, insight *domain.LearningInsight) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, *insight)
	return nil
}

func (f *fakeInsightStore) Find(ctx context.Context, eventType string, since time.Time) ([]domain.LearningInsight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.LearningInsight
	for _, i := range f.appended {
		if eventType != "" && i.EventType != eventType {
			continue
		}
		out = append(out, i)
	}
	return out, nil
}

type fakeOutcomeStore struct {
	mu      sync.Mutex
	records []domain.OutcomeRecord
	err     error
}

func (f *fakeOutcomeStore) Create(ctx context.Context, record *domain.OutcomeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeOutcomeStore) FindSince(ctx context.Context, since time.Time) ([]domain.OutcomeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.OutcomeRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func newTestService() (*LearningService, *fakePatternStore, *fakeInsightStore, *fakeOutcomeStore) {
	patterns := newFakePatternStore()
	insights := &fakeInsightStore{}
	outcomes := &fakeOutcomeStore{}
	return NewLearningService(patterns, insights, outcomes), patterns, insights, outcomes
}

func report(eventType string, rating float64, services ...string) domain.OutcomeReport {
	return domain.OutcomeReport{
		EventID:      "evt-1",
		EventType:    eventType,
		Budget:       10000,
		ServicesUsed: services,
		Metrics: domain.SuccessMetrics{
			OverallRating:     rating,
			BudgetVariance:    20,
			TimelineAdherence: 0.9,
		},
	}
}

// ==========================
// Tests
// ==========================

func TestRecordOutcome_SeedsNewPattern(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	result, err := svc.RecordOutcome(context.Background(), report("wedding", 5, "catering", "music"))
	require.NoError(t, err)
	assert.True(t, result.PatternUpdated)

	p := patterns.get("wedding", "catering,music")
	assert.Equal(t, 1, p.SampleSize)
	assert.Equal(t, 5.0, p.AverageRating)
	assert.Equal(t, 1.0, p.SuccessRate)
	assert.Equal(t, seedConfidence, p.ConfidenceLevel)
}

func TestRecordOutcome_RunningAverages(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	ratings := []float64{5, 3, 4, 4.5, 2}
	prevConfidence := 0.0
	for _, r := range ratings {
		_, err := svc.RecordOutcome(context.Background(), report("wedding", r, "catering", "music"))
		require.NoError(t, err)

		p := patterns.get("wedding", "catering,music")
		assert.GreaterOrEqual(t, p.ConfidenceLevel, prevConfidence)
		prevConfidence = p.ConfidenceLevel
	}

	p := patterns.get("wedding", "catering,music")
	assert.Equal(t, 5, p.SampleSize)
	assert.InDelta(t, (5+3+4+4.5+2)/5.0, p.AverageRating, 1e-9)
	assert.InDelta(t, 3.0/5.0, p.SuccessRate, 1e-9) // ratings >= 4
	assert.InDelta(t, 0.5, p.ConfidenceLevel, 1e-9) // min(1, 5/10)
}

func TestRecordOutcome_ConfidenceSaturates(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	for i := 0; i < 14; i++ {
		_, err := svc.RecordOutcome(context.Background(), report("wedding", 4, "catering"))
		require.NoError(t, err)
	}

	p := patterns.get("wedding", "catering")
	assert.Equal(t, 14, p.SampleSize)
	assert.Equal(t, 1.0, p.ConfidenceLevel)
}

func TestRecordOutcome_CanonicalKeyIsOrderIndependent(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	_, err := svc.RecordOutcome(context.Background(), report("wedding", 4, "music", "catering", "flowers"))
	require.NoError(t, err)
	_, err = svc.RecordOutcome(context.Background(), report("wedding", 5, "flowers", "catering", "music"))
	require.NoError(t, err)

	p := patterns.get("wedding", "catering,flowers,music")
	assert.Equal(t, 2, p.SampleSize)
}

func TestRecordOutcome_EmitsBothInsights(t *testing.T) {
	svc, _, insights, _ := newTestService()

	r := report("wedding", 4.8, "catering", "music", "flowers", "photography")
	r.Metrics.BudgetVariance = 2

	result, err := svc.RecordOutcome(context.Background(), r)
	require.NoError(t, err)
	require.Len(t, result.Insights, 2)

	byType := map[string]domain.LearningInsight{}
	for _, i := range result.Insights {
		byType[i.InsightType] = i
	}

	combo, ok := byType[domain.InsightServiceCombination]
	require.True(t, ok)
	assert.Equal(t, 0.8, combo.Confidence)
	assert.Equal(t, "wedding", combo.EventType)

	budget, ok := byType[domain.InsightBudgetOptimization]
	require.True(t, ok)
	assert.Equal(t, 0.7, budget.Confidence)

	assert.Len(t, insights.appended, 2)
}

func TestRecordOutcome_NoInsightBelowRatingFloor(t *testing.T) {
	svc, _, insights, _ := newTestService()

	r := report("wedding", 3.0, "catering", "music", "flowers", "photography")
	r.Metrics.BudgetVariance = 0

	result, err := svc.RecordOutcome(context.Background(), r)
	require.NoError(t, err)
	assert.Empty(t, result.Insights)
	assert.Empty(t, insights.appended)
}

func TestRecordOutcome_SingleInsightCases(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		variance float64
		want     string
	}{
		{"budget only", []string{"catering", "music"}, 2, domain.InsightBudgetOptimization},
		{"combination only", []string{"a", "b", "c", "d", "e"}, 40, domain.InsightServiceCombination},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestService()

			r := report("gala", 4.6, tt.services...)
			r.Metrics.BudgetVariance = tt.variance

			result, err := svc.RecordOutcome(context.Background(), r)
			require.NoError(t, err)
			require.Len(t, result.Insights, 1)
			assert.Equal(t, tt.want, result.Insights[0].InsightType)
		})
	}
}

func TestRecordOutcome_PatternFailureIsNonFatal(t *testing.T) {
	svc, patterns, insights, outcomes := newTestService()
	patterns.err = errors.New("connection reset")

	r := report("wedding", 4.8, "catering", "music", "flowers", "photography")
	r.Metrics.BudgetVariance = 1

	result, err := svc.RecordOutcome(context.Background(), r)
	require.NoError(t, err)
	assert.False(t, result.PatternUpdated)
	assert.Len(t, result.Insights, 2)
	assert.Len(t, outcomes.records, 1)
	assert.Len(t, insights.appended, 2)
}

func TestRecordOutcome_InsightFailureDropsOnlyInsights(t *testing.T) {
	svc, patterns, insights, _ := newTestService()
	insights.err = errors.New("insert failed")

	r := report("wedding", 4.8, "catering", "music", "flowers", "photography")
	r.Metrics.BudgetVariance = 1

	result, err := svc.RecordOutcome(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, result.PatternUpdated)
	assert.Empty(t, result.Insights)
	assert.Equal(t, 1, patterns.get("wedding", CombinationKey(r.ServicesUsed)).SampleSize)
}

func TestRecordOutcome_RawStoreFailureIsFatal(t *testing.T) {
	svc, _, _, outcomes := newTestService()
	outcomes.err = errors.New("disk full")

	_, err := svc.RecordOutcome(context.Background(), report("wedding", 5, "catering"))
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestRecordOutcome_ValidatesReport(t *testing.T) {
	svc, _, _, _ := newTestService()

	cases := []domain.OutcomeReport{
		{ServicesUsed: []string{"catering"}, Metrics: domain.SuccessMetrics{OverallRating: 4}},
		{EventType: "wedding", Metrics: domain.SuccessMetrics{OverallRating: 4}},
		{EventType: "wedding", ServicesUsed: []string{"catering"}, Metrics: domain.SuccessMetrics{OverallRating: 0}},
		{EventType: "wedding", ServicesUsed: []string{"catering"}, Metrics: domain.SuccessMetrics{OverallRating: 5.5}},
	}

	for i, r := range cases {
		_, err := svc.RecordOutcome(context.Background(), r)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "case %d", i)
	}
}

func TestRecordOutcome_ConcurrentSameKeyLosesNoUpdates(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := svc.RecordOutcome(context.Background(), report("wedding", float64(i%5)+1, "catering", "music"))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	p := patterns.get("wedding", "catering,music")
	assert.Equal(t, workers, p.SampleSize)
}

func TestQueryPatterns_SortedBySuccessRate(t *testing.T) {
	svc, patterns, _, _ := newTestService()

	for i := 0; i < 3; i++ {
		combo := fmt.Sprintf("combo%d", i)
		rating := []float64{5, 3, 4}[i]
		_, err := svc.RecordOutcome(context.Background(), report("wedding", rating, combo))
		require.NoError(t, err)
	}
	require.Len(t, patterns.patterns, 3)

	out, err := svc.QueryPatterns(context.Background(), "wedding", 30)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].SuccessRate, out[i].SuccessRate)
	}
}

func TestQueryInsights_SortedByConfidence(t *testing.T) {
	svc, _, _, _ := newTestService()

	r := report("wedding", 4.8, "catering", "music", "flowers", "photography")
	r.Metrics.BudgetVariance = 2
	_, err := svc.RecordOutcome(context.Background(), r)
	require.NoError(t, err)

	out, err := svc.QueryInsights(context.Background(), "wedding", 30)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, domain.InsightServiceCombination, out[0].InsightType)
	assert.Equal(t, domain.InsightBudgetOptimization, out[1].InsightType)
}

func TestCombinationKey(t *testing.T) {
	assert.Equal(t, "catering,flowers,music", CombinationKey([]string{"music", "catering", "flowers"}))
	assert.Equal(t, "catering", CombinationKey([]string{" catering ", "catering", ""}))
	assert.Equal(t, "", CombinationKey(nil))
}

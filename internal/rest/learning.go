package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"eventify/app/echo-server/metrics"
	"eventify/domain"
	"eventify/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	LearningHandler struct {
		validate        *validator.Validate
		learningService LearningService
		timeout         time.Duration
	}

	LearningService interface {
		RecordOutcome(ctx context.Context, report domain.OutcomeReport) (domain.RecordOutcomeResult, error)
		QueryPatterns(ctx context.Context, eventType string, sinceDays int) ([]domain.ServicePattern, error)
		QueryInsights(ctx context.Context, eventType string, sinceDays int) ([]domain.LearningInsight, error)
		Summary(ctx context.Context, sinceDays int) (domain.OutcomeSummary, error)
	}

	SuccessMetricsPayload struct {
		OverallRating        float64            `json:"overall_rating" validate:"required,gte=1,lte=5"`
		BudgetVariance       float64            `json:"budget_variance"`
		TimelineAdherence    float64            `json:"timeline_adherence" validate:"gte=0,lte=1"`
		AttendeeSatisfaction *float64           `json:"attendee_satisfaction" validate:"omitempty,gte=1,lte=5"`
		VendorRatings        map[string]float64 `json:"vendor_ratings"`
	}

	OutcomeRequest struct {
		EventID       string                `json:"event_id" validate:"required"`
		EventType     string                `json:"event_type" validate:"required"`
		AttendeeCount int                   `json:"attendee_count" validate:"gte=0"`
		Budget        float64               `json:"budget" validate:"gte=0"`
		ServicesUsed  []string              `json:"services_used" validate:"required,min=1,dive,required"`
		Metrics       SuccessMetricsPayload `json:"metrics" validate:"required"`
		Feedback      string                `json:"feedback"`
	}
)

func NewLearningHandler(svc LearningService, timeout time.Duration) *LearningHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LearningHandler{
		validate:        validator.New(),
		learningService: svc,
		timeout:         timeout,
	}
}

// POST /api/v1/events/outcomes
func (h *LearningHandler) RecordOutcome(c echo.Context) error {
	start := time.Now()

	var req OutcomeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.learningService.RecordOutcome(ctx, domain.OutcomeReport{
		EventID:       req.EventID,
		EventType:     req.EventType,
		AttendeeCount: req.AttendeeCount,
		Budget:        req.Budget,
		ServicesUsed:  req.ServicesUsed,
		Metrics: domain.SuccessMetrics{
			OverallRating:        req.Metrics.OverallRating,
			BudgetVariance:       req.Metrics.BudgetVariance,
			TimelineAdherence:    req.Metrics.TimelineAdherence,
			AttendeeSatisfaction: req.Metrics.AttendeeSatisfaction,
			VendorRatings:        req.Metrics.VendorRatings,
		},
		Feedback: req.Feedback,
	})
	if err != nil {
		return learningError(c, err)
	}

	metrics.OutcomeIngestDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, result)
}

// GET /api/v1/learning/patterns?event_type=wedding&since_days=30
func (h *LearningHandler) GetPatterns(c echo.Context) error {
	sinceDays, err := sinceDaysParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid since_days"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	patterns, err := h.learningService.QueryPatterns(ctx, c.QueryParam("event_type"), sinceDays)
	if err != nil {
		return learningError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"patterns": patterns,
	})
}

// GET /api/v1/learning/insights?event_type=wedding&since_days=30
func (h *LearningHandler) GetInsights(c echo.Context) error {
	sinceDays, err := sinceDaysParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid since_days"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	insights, err := h.learningService.QueryInsights(ctx, c.QueryParam("event_type"), sinceDays)
	if err != nil {
		return learningError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"insights": insights,
	})
}

// GET /api/v1/learning/summary?since_days=30
func (h *LearningHandler) GetSummary(c echo.Context) error {
	sinceDays, err := sinceDaysParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid since_days"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.learningService.Summary(ctx, sinceDays)
	if err != nil {
		return learningError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

func sinceDaysParam(c echo.Context) (int, error) {
	raw := c.QueryParam("since_days")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func learningError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.Error("learning store unavailable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "aggregate store unavailable"})
	default:
		logger.Error("learning request failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}

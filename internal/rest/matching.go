package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"eventify/app/echo-server/metrics"
	"eventify/domain"
	"eventify/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	MatchingHandler struct {
		validate        *validator.Validate
		matchingService MatchingService
		timeout         time.Duration
	}

	MatchingService interface {
		Match(ctx context.Context, requirements []domain.ServiceRequirement) ([]domain.ContractorMatch, error)
		ExplainMatch(ctx context.Context, requirements []domain.ServiceRequirement) ([]domain.MatchExplanation, error)
	}

	RequirementPayload struct {
		Category        string  `json:"category" validate:"required"`
		Priority        string  `json:"priority" validate:"omitempty,oneof=low medium high"`
		EstimatedBudget float64 `json:"estimated_budget" validate:"gte=0"`
	}

	MatchRequest struct {
		Requirements []RequirementPayload `json:"requirements" validate:"required,min=1,dive"`
	}
)

func NewMatchingHandler(svc MatchingService, timeout time.Duration) *MatchingHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MatchingHandler{
		validate:        validator.New(),
		matchingService: svc,
		timeout:         timeout,
	}
}

// POST /api/v1/matching/search
func (h *MatchingHandler) Search(c echo.Context) error {
	start := time.Now()

	req, err := h.bindRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	matches, err := h.matchingService.Match(ctx, req.toDomain())
	if err != nil {
		return matchingError(c, err)
	}

	metrics.MatchDuration.Observe(time.Since(start).Seconds())
	metrics.MatchRequestsTotal.Inc()

	return c.JSON(http.StatusOK, map[string]interface{}{
		"matches": matches,
	})
}

// POST /api/v1/matching/search/debug
func (h *MatchingHandler) SearchDebug(c echo.Context) error {
	req, err := h.bindRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	explanations, err := h.matchingService.ExplainMatch(ctx, req.toDomain())
	if err != nil {
		return matchingError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"explanations": explanations,
	})
}

func (h *MatchingHandler) bindRequest(c echo.Context) (MatchRequest, error) {
	var req MatchRequest
	if err := c.Bind(&req); err != nil {
		return MatchRequest{}, err
	}
	if err := h.validate.Struct(&req); err != nil {
		return MatchRequest{}, err
	}
	return req, nil
}

func (req MatchRequest) toDomain() []domain.ServiceRequirement {
	out := make([]domain.ServiceRequirement, 0, len(req.Requirements))
	for _, r := range req.Requirements {
		out = append(out, domain.ServiceRequirement{
			Category:        r.Category,
			Priority:        r.Priority,
			EstimatedBudget: r.EstimatedBudget,
		})
	}
	return out
}

func matchingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		logger.Error("matching upstream unavailable", "error", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "provider catalog unavailable"})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	default:
		logger.Error("matching search failed", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}

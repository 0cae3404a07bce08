package rest

import (
	"net/http"

	"eventify/business/matching"
	"eventify/domain"

	"github.com/labstack/echo/v4"
)

type MatchingAdminHandler struct {
	cfgRepo matching.ConfigRepository
}

func NewMatchingAdminHandler(cfgRepo matching.ConfigRepository) *MatchingAdminHandler {
	return &MatchingAdminHandler{cfgRepo: cfgRepo}
}

// GET /api/v1/admin/matching/config
func (h *MatchingAdminHandler) GetConfig(c echo.Context) error {
	ctx := c.Request().Context()

	cfg, ok, err := h.cfgRepo.GetConfig(ctx, matching.ConfigName)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "config not found, defaults in effect",
		})
	}

	return c.JSON(http.StatusOK, cfg)
}

// PUT /api/v1/admin/matching/config
// body: MatchingConfig JSON
func (h *MatchingAdminHandler) UpsertConfig(c echo.Context) error {
	ctx := c.Request().Context()

	var body domain.MatchingConfig
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "invalid body: " + err.Error(),
		})
	}
	if body.Name == "" {
		body.Name = matching.ConfigName
	}

	if err := h.cfgRepo.UpsertConfig(ctx, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

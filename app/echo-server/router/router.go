package router

import (
	"eventify/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupMatchingRoutes(api *echo.Group, handler *rest.MatchingHandler) {
	matching := api.Group("/matching")

	matching.POST("/search", handler.Search)
	matching.POST("/search/debug", handler.SearchDebug)
}

func SetupLearningRoutes(api *echo.Group, handler *rest.LearningHandler) {
	api.POST("/events/outcomes", handler.RecordOutcome)

	learning := api.Group("/learning")
	learning.GET("/patterns", handler.GetPatterns)
	learning.GET("/insights", handler.GetInsights)
	learning.GET("/summary", handler.GetSummary)
}

func SetupMatchingAdminRoutes(api *echo.Group, handler *rest.MatchingAdminHandler) {
	admin := api.Group("/admin/matching")

	admin.GET("/config", handler.GetConfig)
	admin.PUT("/config", handler.UpsertConfig)
}

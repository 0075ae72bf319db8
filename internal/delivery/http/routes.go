package http

import (
	"github.com/gin-gonic/gin"
	"github.com/trazia/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware; request IDs come first so every log line carries one
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		v1.GET("/regions", handler.ListRegions)

		nutrition := v1.Group("/nutrition")
		{
			nutrition.POST("/aggregate", handler.AggregateNutrients)
			nutrition.POST("/normalize", handler.NormalizeProfile)
			nutrition.POST("/daily-values", handler.DailyValues)
		}

		retention := v1.Group("/retention")
		{
			retention.GET("/methods", handler.ListRetentionMethods)
			retention.POST("/apply", handler.ApplyRetention)
		}

		v1.POST("/recipes/costing", handler.ComputeCosting)
		v1.POST("/labels", handler.GenerateLabel)
		v1.GET("/products/:fdcId/profile", handler.GetProductProfile)
	}

	return router
}

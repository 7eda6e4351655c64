package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/caloria/backend/internal/service"
)

const Version = "v1.0.0"

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "CalorIA API is running",
		"version": Version,
	})
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, analysisService service.IFoodAnalysisService) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", HealthCheck)

	NewAnalysisHandler(analysisService).RegisterRoutes(apiGroup)
}

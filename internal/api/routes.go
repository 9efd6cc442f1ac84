package api

import (
	"github.com/gin-gonic/gin"

	"fluently/internal/analysis"
	"fluently/internal/utils"
)

// pipeline is the shared analysis orchestrator, set once at startup.
var pipeline *analysis.Analyzer

// InitPipeline installs the analysis pipeline used by the handlers.
func InitPipeline(a *analysis.Analyzer) {
	pipeline = a
}

func RegisterRoutes(r *gin.Engine) {
	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyses", runAnalysis)
		v1.GET("/analyses/:id", getAnalysis)
		v1.GET("/analyses", getAnalysisHistory)
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "fluently-backend",
	})
}

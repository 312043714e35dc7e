package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/pipelines/:name/runs", handler.TriggerPipeline)
		v1.GET("/pipelines/runs/:workflow_id", handler.GetPipelineRun)
	}
}

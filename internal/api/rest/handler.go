package rest

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-gallery-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
)

// maxParamsBytes bounds the parameter object of a trigger
const maxParamsBytes = 1 << 20

// Handler defines the interface for REST API handlers
type Handler interface {
	// TriggerPipeline starts a pipeline by name with the JSON body as parameters
	// POST /api/v1/pipelines/:name/runs
	TriggerPipeline(c *gin.Context)

	// GetPipelineRun retrieves the recorded state of a pipeline run
	// GET /api/v1/pipelines/runs/:workflow_id
	GetPipelineRun(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) TriggerPipeline(c *gin.Context) {
	name := domain.PipelineName(c.Param("name"))

	params, err := io.ReadAll(io.LimitReader(c.Request.Body, maxParamsBytes+1))
	if err != nil {
		respondBadRequest(c, "Failed to read request body", err.Error())
		return
	}
	if len(params) > maxParamsBytes {
		respondBadRequest(c, "Request body too large")
		return
	}

	response, err := h.executor.TriggerPipeline(c.Request.Context(), name, params)
	if err != nil {
		respondError(c, err, "Failed to trigger pipeline")
		return
	}

	c.JSON(http.StatusAccepted, response)
}

func (h *handler) GetPipelineRun(c *gin.Context) {
	workflowID := c.Param("workflow_id")
	if workflowID == "" {
		respondBadRequest(c, "workflow_id is required")
		return
	}

	run, err := h.executor.GetPipelineRun(c.Request.Context(), workflowID)
	if err != nil {
		respondError(c, err, "Failed to get pipeline run")
		return
	}

	c.JSON(http.StatusOK, run)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-gallery-indexer-api",
	})
}

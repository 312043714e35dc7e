package dto

import (
	"encoding/json"
	"time"

	"github.com/feral-file/ff-gallery-indexer/internal/store/schema"
)

// TriggerPipelineResponse identifies the workflow a trigger started
type TriggerPipelineResponse struct {
	Pipeline   string `json:"pipeline"`
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// PipelineRunResponse is the recorded state of a pipeline run
type PipelineRunResponse struct {
	WorkflowID  string          `json:"workflow_id"`
	RunID       string          `json:"run_id"`
	Pipeline    string          `json:"pipeline"`
	Status      string          `json:"status"`
	Input       json.RawMessage `json:"input,omitempty"`
	Warnings    []string        `json:"warnings"`
	Error       *string         `json:"error,omitempty"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
}

// MapPipelineRunToDTO maps a pipeline_runs row to its response
func MapPipelineRunToDTO(run *schema.PipelineRun) *PipelineRunResponse {
	warnings := []string(run.Warnings)
	if warnings == nil {
		warnings = []string{}
	}

	resp := &PipelineRunResponse{
		WorkflowID:  run.WorkflowID,
		RunID:       run.WorkflowRunID,
		Pipeline:    run.Pipeline,
		Status:      string(run.Status),
		Warnings:    warnings,
		Error:       run.Error,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
	}
	if len(run.Input) > 0 {
		resp.Input = json.RawMessage(run.Input)
	}
	return resp
}

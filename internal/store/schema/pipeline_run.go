package schema

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PipelineRunStatus is the terminal state of a pipeline run
type PipelineRunStatus string

const (
	// PipelineRunStatusRunning is the status of a run that has started but not finished
	PipelineRunStatusRunning PipelineRunStatus = "running"
	// PipelineRunStatusCompleted is the status of a run that finished, possibly with warnings
	PipelineRunStatusCompleted PipelineRunStatus = "completed"
	// PipelineRunStatusFailed is the status of a run that ended with a terminal error
	PipelineRunStatusFailed PipelineRunStatus = "failed"
)

// PipelineRun represents the pipeline_runs table - the operator visible outcome of each workflow run
type PipelineRun struct {
	ID uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	// WorkflowID is the Temporal workflow ID of the run
	WorkflowID string `gorm:"column:workflow_id;not null;uniqueIndex;type:varchar(255)"`
	// WorkflowRunID is the Temporal run ID of the latest attempt
	WorkflowRunID string `gorm:"column:workflow_run_id;type:varchar(255)"`
	// Pipeline is the pipeline name (seed-and-startup, scrape-and-extract, ...)
	Pipeline string            `gorm:"column:pipeline;not null;type:varchar(64)"`
	Status   PipelineRunStatus `gorm:"column:status;not null;type:varchar(16);default:running"`
	// Input is the JSON parameter object the run was started with
	Input datatypes.JSON `gorm:"column:input;type:jsonb"`
	// Warnings are the named partial failures of a completed run
	Warnings    datatypes.JSONSlice[string] `gorm:"column:warnings;not null;type:jsonb;default:'[]'"`
	Error       *string                     `gorm:"column:error;type:text"`
	StartedAt   time.Time                   `gorm:"column:started_at;not null;default:now();type:timestamptz"`
	CompletedAt *time.Time                  `gorm:"column:completed_at;type:timestamptz"`
}

// TableName specifies the table name for the PipelineRun model
func (PipelineRun) TableName() string {
	return "pipeline_runs"
}

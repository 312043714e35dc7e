package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies the workflow execution a log entry belongs to
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

func (i WorkflowInfo) fields() []zap.Field {
	return []zap.Field{
		zap.String("workflow_type", i.WorkflowType),
		zap.String("workflow_id", i.WorkflowID),
		zap.String("run_id", i.RunID),
		zap.String("namespace", i.Namespace),
		zap.String("task_queue", i.TaskQueue),
	}
}

// GetWorkflowInfo reads the execution identity from a workflow context.
// It returns nil when no info is attached.
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowType := info.WorkflowType.Name
	if workflowType == "" {
		workflowType = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowType,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns the global logger annotated with the execution identity
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(info.fields()...)
}

// FromWorkflow returns a logger for ctx, reading the info from ctx when it is nil
func FromWorkflow(ctx workflow.Context, info *WorkflowInfo) *zap.Logger {
	if info == nil {
		info = GetWorkflowInfo(ctx)
	}
	if info == nil {
		return log
	}
	return WithWorkflowInfo(*info)
}

// Workflow code is replayed, so every helper below goes through
// workflow.IsReplaying to avoid duplicate entries.

func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Info(msg, fields...)
}

func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Warn(msg, fields...)
}

func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Debug(msg, fields...)
}

func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx, nil).Error(errorMessage(err), fields...)
}

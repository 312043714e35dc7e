package workflows

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/logger"
)

var (
	// defaultActivityOptions suit short store backed activities
	defaultActivityOptions = workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 3,
		},
	}

	// batchActivityOptions suit activities that fetch pages or call the completion service
	batchActivityOptions = workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    3,
		},
	}

	runActivityOptions = workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
			InitialInterval: 2 * time.Second,
		},
	}
)

// NewPipelineTimeoutError is the terminal error of a pipeline whose polling budget ran out
func NewPipelineTimeoutError(format string, args ...interface{}) error {
	return temporal.NewNonRetryableApplicationError(
		fmt.Sprintf(format, args...),
		domain.PIPELINE_TIMEOUT_ERROR_TYPE,
		domain.ErrPipelineTimeout,
	)
}

// startRun records the workflow in pipeline_runs. Failures only lose bookkeeping.
func (w *workerCore) startRun(ctx workflow.Context, pipeline domain.PipelineName, input interface{}) {
	runCtx := workflow.WithActivityOptions(ctx, runActivityOptions)
	if err := workflow.ExecuteActivity(runCtx, w.executor.StartPipelineRun, pipeline, input).Get(runCtx, nil); err != nil {
		logger.WarnWf(ctx, "Failed to record pipeline run start",
			zap.String("pipeline", string(pipeline)),
			zap.Error(err))
	}
}

// completeRun records the terminal state of the workflow. It runs on a disconnected
// context so that a canceled workflow still reports.
func (w *workerCore) completeRun(ctx workflow.Context, pipeline domain.PipelineName, warnings []string, runErr error) {
	disconnected, cancel := workflow.NewDisconnectedContext(ctx)
	defer cancel()
	runCtx := workflow.WithActivityOptions(disconnected, runActivityOptions)

	var errMsg *string
	if runErr != nil {
		msg := runErr.Error()
		errMsg = &msg
	}

	if err := workflow.ExecuteActivity(runCtx, w.executor.CompletePipelineRun, pipeline, warnings, errMsg).Get(runCtx, nil); err != nil {
		logger.WarnWf(ctx, "Failed to record pipeline run completion",
			zap.String("pipeline", string(pipeline)),
			zap.Error(err))
	}
}

// pollUntil calls check up to attempts times with a fixed sleep in between.
// It reports whether check succeeded before the attempts ran out.
func (w *workerCore) pollUntil(ctx workflow.Context, attempts int, check func() (bool, error)) (bool, error) {
	for attempt := 1; attempt <= attempts; attempt++ {
		done, err := check()
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if attempt < attempts {
			if err := workflow.Sleep(ctx, w.config.PollInterval); err != nil {
				return false, err
			}
		}
	}
	return false, nil
}

// startChild starts a child workflow without waiting for its result
func (w *workerCore) startChild(ctx workflow.Context, workflowID string, timeout time.Duration, childWorkflow interface{}, args ...interface{}) error {
	childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
		WorkflowID:            workflowID,
		WorkflowRunTimeout:    timeout,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		ParentClosePolicy:     enums.PARENT_CLOSE_POLICY_ABANDON,
	})

	child := workflow.ExecuteChildWorkflow(childCtx, childWorkflow, args...)

	var execution workflow.Execution
	if err := child.GetChildWorkflowExecution().Get(ctx, &execution); err != nil {
		return err
	}

	logger.InfoWf(ctx, "Child workflow started",
		zap.String("workflowID", execution.ID),
		zap.String("runID", execution.RunID))

	return nil
}

// childWorkflowID derives a child ID from the running workflow so replays reuse it
func childWorkflowID(ctx workflow.Context, prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, workflow.GetInfo(ctx).WorkflowExecution.ID)
}

// failureWarnings renders per-item failures as warnings ordered by ID
func failureWarnings(what string, failed map[uuid.UUID]string) []string {
	ids := slices.SortedFunc(maps.Keys(failed), func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	warnings := make([]string, 0, len(ids))
	for _, id := range ids {
		warnings = append(warnings, fmt.Sprintf("%s %s: %s", what, id, failed[id]))
	}
	return warnings
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

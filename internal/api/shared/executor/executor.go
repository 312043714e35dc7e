package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
	"github.com/feral-file/ff-gallery-indexer/internal/api/shared/constants"
	"github.com/feral-file/ff-gallery-indexer/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-gallery-indexer/internal/api/shared/errors"
	"github.com/feral-file/ff-gallery-indexer/internal/domain"
	"github.com/feral-file/ff-gallery-indexer/internal/providers/temporal"
	"github.com/feral-file/ff-gallery-indexer/internal/store"
	"github.com/feral-file/ff-gallery-indexer/internal/uri"
	"github.com/feral-file/ff-gallery-indexer/internal/workflows"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// TriggerPipeline starts the named pipeline with a JSON parameter object
	TriggerPipeline(ctx context.Context, pipeline domain.PipelineName, params []byte) (*dto.TriggerPipelineResponse, error)

	// GetPipelineRun retrieves the recorded state of a pipeline run
	GetPipelineRun(ctx context.Context, workflowID string) (*dto.PipelineRunResponse, error)
}

type executor struct {
	store                 store.Store
	orchestrator          temporal.TemporalOrchestrator
	orchestratorTaskQueue string
	json                  adapter.JSON
	clock                 adapter.Clock
	validate              *validator.Validate
}

func NewExecutor(store store.Store, orchestrator temporal.TemporalOrchestrator, orchestratorTaskQueue string, json adapter.JSON, clock adapter.Clock) Executor {
	// share the tag workflow inputs already carry for gin binding
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.SetTagName("binding")

	return &executor{
		store:                 store,
		orchestrator:          orchestrator,
		orchestratorTaskQueue: orchestratorTaskQueue,
		json:                  json,
		clock:                 clock,
		validate:              validate,
	}
}

// pipelineStart is a resolved trigger: which workflow to run, under which ID, with what argument
type pipelineStart struct {
	workflowID string
	timeout    time.Duration
	workflow   interface{}
	arg        interface{}
}

func (e *executor) TriggerPipeline(ctx context.Context, pipeline domain.PipelineName, params []byte) (*dto.TriggerPipelineResponse, error) {
	if !pipeline.Valid() {
		return nil, apierrors.NewNotFoundError(fmt.Sprintf("Unknown pipeline: %s", pipeline), domain.ErrUnknownPipeline.Error())
	}
	if len(strings.TrimSpace(string(params))) == 0 {
		params = []byte("{}")
	}

	start, err := e.resolve(pipeline, params)
	if err != nil {
		return nil, err
	}

	options := client.StartWorkflowOptions{
		ID:                       start.workflowID,
		TaskQueue:                e.orchestratorTaskQueue,
		WorkflowExecutionTimeout: start.timeout,
	}
	wfRun, err := e.orchestrator.ExecuteWorkflow(ctx, options, start.workflow, start.arg)
	if err != nil {
		return nil, apierrors.NewServiceError(fmt.Sprintf("Failed to trigger %s: %v", pipeline, err))
	}

	return &dto.TriggerPipelineResponse{
		Pipeline:   string(pipeline),
		WorkflowID: wfRun.GetID(),
		RunID:      wfRun.GetRunID(),
	}, nil
}

// resolve decodes and validates params for the pipeline
func (e *executor) resolve(pipeline domain.PipelineName, params []byte) (*pipelineStart, error) {
	// Only method values are needed to name the workflows
	w := workflows.NewWorkerCore(nil, workflows.WorkerCoreConfig{})

	switch pipeline {
	case domain.PipelineSeedAndStartup:
		var input workflows.SeedAndStartupInput
		if err := e.decode(params, &input); err != nil {
			return nil, err
		}
		normalized, err := uri.Normalize(input.MainURL)
		if err != nil {
			return nil, apierrors.NewValidationError(fmt.Sprintf("main_url: %v", err))
		}
		// one seed per gallery at a time: a second trigger joins the running workflow
		return &pipelineStart{
			workflowID: fmt.Sprintf("%s-%s", pipeline, normalized),
			timeout:    constants.SEED_AND_STARTUP_TIMEOUT,
			workflow:   w.SeedAndStartup,
			arg:        input,
		}, nil

	case domain.PipelineScrapeAndExtract, domain.PipelineScrapePages:
		var req dto.PageIDsRequest
		if err := e.decode(params, &req); err != nil {
			return nil, err
		}
		start := &pipelineStart{
			workflowID: e.newWorkflowID(pipeline),
			timeout:    constants.SCRAPE_AND_EXTRACT_TIMEOUT,
			workflow:   w.ScrapeAndExtract,
			arg:        req.PageIDs,
		}
		if pipeline == domain.PipelineScrapePages {
			start.timeout = constants.SCRAPE_PAGES_TIMEOUT
			start.workflow = w.ScrapePages
		}
		return start, nil

	case domain.PipelineDiscoverLinks:
		var input workflows.DiscoverLinksInput
		if err := e.decode(params, &input); err != nil {
			return nil, err
		}
		return &pipelineStart{
			workflowID: e.newWorkflowID(pipeline),
			timeout:    constants.DISCOVER_LINKS_TIMEOUT,
			workflow:   w.DiscoverLinks,
			arg:        input,
		}, nil

	case domain.PipelineEmbedEntities:
		var req dto.EmbedEntitiesRequest
		if err := e.decode(params, &req); err != nil {
			return nil, err
		}
		if len(req.GalleryIDs) == 0 && len(req.EventIDs) == 0 {
			return nil, apierrors.NewValidationError("gallery_ids or event_ids is required")
		}
		return &pipelineStart{
			workflowID: e.newWorkflowID(pipeline),
			timeout:    constants.EMBED_ENTITIES_TIMEOUT,
			workflow:   w.EmbedEntities,
			arg:        workflows.EmbedEntitiesInput{GalleryIDs: req.GalleryIDs, EventIDs: req.EventIDs},
		}, nil
	}

	return nil, apierrors.NewNotFoundError(fmt.Sprintf("Unknown pipeline: %s", pipeline), domain.ErrUnknownPipeline.Error())
}

func (e *executor) decode(params []byte, v interface{}) error {
	if err := e.json.Unmarshal(params, v); err != nil {
		return apierrors.NewValidationError(fmt.Sprintf("Invalid parameters: %v", err))
	}
	if err := e.validate.Struct(v); err != nil {
		return apierrors.NewValidationError(err.Error())
	}
	return nil
}

func (e *executor) newWorkflowID(pipeline domain.PipelineName) string {
	return fmt.Sprintf("%s-%s", pipeline, ulid.MustNewDefault(e.clock.Now()).String())
}

func (e *executor) GetPipelineRun(ctx context.Context, workflowID string) (*dto.PipelineRunResponse, error) {
	run, err := e.store.GetPipelineRunByWorkflowID(ctx, workflowID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get pipeline run: %v", err))
	}
	if run == nil {
		return nil, apierrors.NewNotFoundError("Pipeline run not found", workflowID)
	}

	return dto.MapPipelineRunToDTO(run), nil
}

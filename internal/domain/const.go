package domain

const (
	// Discovery constants
	DEFAULT_MAX_LINKS_PER_LISTING = 100

	// Extraction constants
	NO_MARKDOWN_REASON = "No markdown to extract"

	// Materialization constants
	DEFAULT_EVENT_TIMEZONE = "UTC"

	// Workflow error types
	PIPELINE_TIMEOUT_ERROR_TYPE = "PipelineTimeout"
)

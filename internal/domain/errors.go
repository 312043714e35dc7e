package domain

import "errors"

var (
	// ErrMalformedURL is returned when a URL cannot be normalized
	ErrMalformedURL = errors.New("malformed URL")

	// ErrPipelineTimeout is returned when a pipeline exhausts its polling budget
	ErrPipelineTimeout = errors.New("pipeline timeout")

	// ErrNoMarkdown is recorded when a page has no content to extract from
	ErrNoMarkdown = errors.New(NO_MARKDOWN_REASON)

	// ErrInvalidExtraction is returned when a completion result fails validation
	ErrInvalidExtraction = errors.New("invalid extraction")

	// ErrGalleryNotFound is returned when a gallery is not found
	ErrGalleryNotFound = errors.New("gallery not found")

	// ErrPageNotFound is returned when a page is not found
	ErrPageNotFound = errors.New("page not found")

	// ErrUnknownPipeline is returned when a pipeline name is not registered
	ErrUnknownPipeline = errors.New("unknown pipeline")
)

package sweeper

import (
	"context"
)

// Sweeper is a long-running background task that periodically finds unfinished work
type Sweeper interface {
	// Start runs the sweep loop and blocks until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop asks the loop to exit and waits for in-flight work, bounded by ctx
	Stop(ctx context.Context) error

	// Name returns the sweeper's name for logging and identification
	Name() string
}

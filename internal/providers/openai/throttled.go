package openai

import (
	"context"

	"github.com/feral-file/ff-gallery-indexer/internal/ratelimit"
)

// Rate limit provider names
const (
	RateLimitCompletions = "openai-completions"
	RateLimitEmbeddings  = "openai-embeddings"
)

type throttledClient struct {
	Client
	throttle ratelimit.Throttle
}

// NewThrottledClient paces the calls of inner through throttle.
// Completions and embeddings are limited separately.
func NewThrottledClient(inner Client, throttle ratelimit.Throttle) Client {
	return &throttledClient{Client: inner, throttle: throttle}
}

func (c *throttledClient) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) ([]byte, error) {
	return ratelimit.Do(ctx, c.throttle, RateLimitCompletions, func(ctx context.Context) ([]byte, error) {
		return c.Client.GenerateJSON(ctx, system, user, schemaName, schema)
	})
}

func (c *throttledClient) Embed(ctx context.Context, input string) ([]float32, error) {
	return ratelimit.Do(ctx, c.throttle, RateLimitEmbeddings, func(ctx context.Context) ([]float32, error) {
		return c.Client.Embed(ctx, input)
	})
}

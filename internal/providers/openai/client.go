package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/feral-file/ff-gallery-indexer/internal/adapter"
)

// Config holds the OpenAI-compatible endpoint configuration
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	EmbeddingModel string
}

// Client is a minimal client for structured completions and embeddings
//
//go:generate mockgen -source=client.go -destination=../../mocks/openai_client.go -package=mocks -mock_names=Client=MockOpenAIClient
type Client interface {
	// GenerateJSON asks the model for a document matching schema and returns the raw JSON text
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) ([]byte, error)

	// Embed returns the embedding vector of input
	Embed(ctx context.Context, input string) ([]float32, error)

	// EmbeddingModel returns the name of the model used by Embed
	EmbeddingModel() string
}

type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
}

// NewClient creates a new OpenAI client
func NewClient(cfg Config, httpClient adapter.HTTPClient) Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &client{cfg: cfg, httpClient: httpClient}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responsesRequest struct {
	Model string    `json:"model"`
	Input []message `json:"input"`
	Text  struct {
		Format map[string]any `json:"format"`
	} `json:"text"`
}

type responsesResponse struct {
	Output []struct {
		Type string `json:"type"`
		Role string `json:"role,omitempty"`
		Content []struct {
			Type    string `json:"type"`
			Text    string `json:"text,omitempty"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"content,omitempty"`
	} `json:"output"`
}

// outputText concatenates the assistant text parts and reports any refusal
func (r responsesResponse) outputText() (string, string) {
	var text, refusal strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != "assistant" {
			continue
		}
		for _, part := range item.Content {
			switch part.Type {
			case "output_text":
				text.WriteString(part.Text)
			case "refusal":
				refusal.WriteString(part.Refusal)
			}
		}
	}
	return text.String(), refusal.String()
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

func (c *client) headers() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
}

// GenerateJSON requests a strict json_schema response
func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) ([]byte, error) {
	if schemaName == "" || schema == nil {
		return nil, errors.New("schema name and schema are required")
	}

	req := responsesRequest{
		Model: c.cfg.Model,
		Input: []message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	req.Text.Format = map[string]any{
		"type":   "json_schema",
		"name":   schemaName,
		"schema": schema,
		"strict": true,
	}

	var resp responsesResponse
	if err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL+"/responses", c.headers(), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", schemaName, err)
	}

	text, refusal := resp.outputText()
	if refusal != "" {
		return nil, fmt.Errorf("model refused: %s", refusal)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no output_text found in response")
	}

	return []byte(text), nil
}

// Embed returns the embedding of a single input
func (c *client) Embed(ctx context.Context, input string) ([]float32, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("embedding input is empty")
	}

	var resp embeddingsResponse
	req := embeddingsRequest{Model: c.cfg.EmbeddingModel, Input: []string{input}}
	if err := c.httpClient.PostJSON(ctx, c.cfg.BaseURL+"/embeddings", c.headers(), req, &resp); err != nil {
		return nil, fmt.Errorf("failed to embed: %w", err)
	}

	for _, d := range resp.Data {
		if d.Index != 0 || len(d.Embedding) == 0 {
			continue
		}
		vec := make([]float32, len(d.Embedding))
		for i, f := range d.Embedding {
			vec[i] = float32(f)
		}
		return vec, nil
	}

	return nil, errors.New("embedding missing from response")
}

func (c *client) EmbeddingModel() string {
	return c.cfg.EmbeddingModel
}

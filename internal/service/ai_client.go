package service

import (
	"context"
)

// AIClient is the interface for the LLM provider consumed by the extraction,
// generation, and personalization stages.
type AIClient interface {
	// ChatCompletion performs a blocking chat completion round trip
	ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error)

	// CreateEmbeddings generates embeddings for texts
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)

	// IsEnabled returns whether the client is configured and ready
	IsEnabled() bool
}

// Ensure OpenAIClient implements AIClient
var _ AIClient = (*OpenAIClient)(nil)

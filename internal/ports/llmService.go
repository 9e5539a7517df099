package ports

import (
	"context"

	"github.com/morgansundqvist/minicopilot/internal/domain"
)

type LLMService interface {
	// ListModels returns the model ids the configured key can access.
	ListModels(ctx context.Context) ([]string, error)

	Complete(ctx context.Context, input domain.LLMInput) (string, error)
}

// LLMFactory builds a provider client once the API key is known.
type LLMFactory func(apiKey string) (LLMService, error)

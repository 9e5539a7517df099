package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/morgansundqvist/minicopilot/internal/domain"
	"github.com/morgansundqvist/minicopilot/internal/ports"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLMService talks to OpenAI or any OpenAI-compatible endpoint.
type OpenAILLMService struct {
	client openai.Client
}

type OpenAISettings struct {
	APIKey  string
	BaseURL string
	// Extra options, mostly for tests (custom HTTP client and the like).
	Options []option.RequestOption
}

// NewOpenAILLMService creates a client that never retries on its own; a
// failed call is reported and the user decides whether to try again.
func NewOpenAILLMService(settings OpenAISettings) (*OpenAILLMService, error) {
	if settings.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(settings.APIKey),
		option.WithMaxRetries(0),
	}
	if settings.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(settings.BaseURL))
	}
	opts = append(opts, settings.Options...)
	return &OpenAILLMService{client: openai.NewClient(opts...)}, nil
}

// OpenAIFactory returns a ports.LLMFactory bound to baseURL.
func OpenAIFactory(baseURL string, extra ...option.RequestOption) ports.LLMFactory {
	return func(apiKey string) (ports.LLMService, error) {
		return NewOpenAILLMService(OpenAISettings{APIKey: apiKey, BaseURL: baseURL, Options: extra})
	}
}

func (s *OpenAILLMService) ListModels(ctx context.Context) ([]string, error) {
	page, err := s.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	ids := make([]string, 0, len(page.Data))
	for _, m := range page.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

func (s *OpenAILLMService) Complete(ctx context.Context, input domain.LLMInput) (string, error) {
	chatCompletion, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(input.SystemMessage),
			openai.UserMessage(input.UserMessage),
		},
		Model: openai.ChatModel(input.Model),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get chat completion: %w", err)
	}
	if len(chatCompletion.Choices) == 0 {
		return "", errors.New("openai: response contained no choices")
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/morgansundqvist/minicopilot/internal/domain"
	"github.com/morgansundqvist/minicopilot/internal/ports"
)

// DefaultSecretName is the secret holding the provider API key.
const DefaultSecretName = "OPENAI_API_KEY"

// LoadAPIKey reads the API key from store. A missing key is fatal for the
// caller: nothing may reach the network without it.
func LoadAPIKey(store ports.SecretStore, name string) (string, error) {
	if store != nil {
		if key, ok := store.Secret(name); ok {
			return key, nil
		}
	}
	return "", domain.NewError(domain.KindConfigMissing,
		fmt.Sprintf("OpenAI API key not found in secrets. Please add %s to the secrets file, .env or the environment.", name), nil)
}

// IsModelAvailable asks the provider for its model list and reports whether
// modelID is in it. Any failure of the listing call is ProviderUnavailable.
func IsModelAvailable(ctx context.Context, llm ports.LLMService, modelID string) (bool, error) {
	ids, err := llm.ListModels(ctx)
	if err != nil {
		return false, domain.NewError(domain.KindProviderUnavailable, "Error fetching model list", err)
	}
	return slices.Contains(ids, modelID), nil
}

// Complete sends one system and one user message and returns the first
// choice verbatim.
func Complete(ctx context.Context, llm ports.LLMService, modelID, systemPreamble, prompt string) (string, error) {
	text, err := llm.Complete(ctx, domain.LLMInput{
		SystemMessage: systemPreamble,
		UserMessage:   prompt,
		Model:         modelID,
	})
	if err != nil {
		return "", domain.NewError(domain.KindProviderError, "Error from OpenAI API", err)
	}
	return text, nil
}

func modelMissing(modelID string) error {
	return domain.NewError(domain.KindProviderUnavailable,
		fmt.Sprintf("Model `%s` is not available with your API key. Please check your OpenAI account.", modelID), nil)
}

// CopilotService runs one interaction per call. The API key is read once at
// construction and never changes afterwards.
type CopilotService struct {
	llm       ports.LLMService
	configErr error
	model     string
	logger    *slog.Logger
}

type Options struct {
	SecretName string
	Model      string
	Logger     *slog.Logger
}

func NewCopilotService(secrets ports.SecretStore, factory ports.LLMFactory, opts Options) *CopilotService {
	if opts.SecretName == "" {
		opts.SecretName = DefaultSecretName
	}
	if opts.Model == "" {
		opts.Model = domain.DefaultModel
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &CopilotService{model: opts.Model, logger: opts.Logger}

	key, err := LoadAPIKey(secrets, opts.SecretName)
	if err != nil {
		s.configErr = err
		s.logger.Error("api key not loaded", "secret", opts.SecretName)
		return s
	}
	llm, err := factory(key)
	if err != nil {
		s.configErr = domain.NewError(domain.KindConfigMissing, "could not create provider client", err)
		s.logger.Error("provider client not created", "error", err)
		return s
	}
	s.llm = llm
	return s
}

func (s *CopilotService) Model() string {
	return s.model
}

// ConfigError is non-nil when the service can never complete a request.
func (s *CopilotService) ConfigError() error {
	return s.configErr
}

// Models lists what the key can access.
func (s *CopilotService) Models(ctx context.Context) ([]string, error) {
	if s.configErr != nil {
		return nil, s.configErr
	}
	ids, err := s.llm.ListModels(ctx)
	if err != nil {
		return nil, domain.NewError(domain.KindProviderUnavailable, "Error fetching model list", err)
	}
	return ids, nil
}

// Status reports key and model availability for the page header. It runs
// the availability check every time it is called.
func (s *CopilotService) Status(ctx context.Context) domain.Status {
	st := domain.Status{Model: s.model}
	if s.configErr != nil {
		kind, msg := domain.Describe(s.configErr)
		st.Error, st.ErrorKind = msg, string(kind)
		return st
	}
	st.KeyLoaded = true

	ok, err := IsModelAvailable(ctx, s.llm, s.model)
	if err == nil && !ok {
		err = modelMissing(s.model)
	}
	if err != nil {
		kind, msg := domain.Describe(err)
		st.Error, st.ErrorKind = msg, string(kind)
		return st
	}
	st.ModelAvailable = true
	return st
}

// Generate runs the whole pipeline for one trigger: configuration, input
// validation, model check, prompt, completion. The first failing stage ends
// the interaction. Errors are *domain.CopilotError, except a Task outside
// the enumeration, which wraps domain.ErrInvalidTask.
func (s *CopilotService) Generate(ctx context.Context, req domain.PromptRequest) (domain.CompletionResult, error) {
	start := time.Now()
	result := domain.CompletionResult{
		ID:    uuid.NewString(),
		Task:  req.Task,
		Model: s.model,
		Stage: domain.StageIdle,
	}
	logger := s.logger.With("interaction", result.ID, "task", req.Task.String(), "model", s.model)

	fail := func(err error) (domain.CompletionResult, error) {
		failedAt := result.Stage
		result.Stage = domain.StageDisplayingError
		result.Duration = time.Since(start)
		logger.Warn("interaction failed",
			"stage", failedAt,
			"kind", domain.KindOf(err),
			"error", err,
			"duration", result.Duration)
		return result, err
	}

	if s.configErr != nil {
		return fail(s.configErr)
	}

	result.Stage = domain.StageValidating
	if err := req.Validate(); err != nil {
		return fail(err)
	}

	result.Stage = domain.StageCheckingModel
	ok, err := IsModelAvailable(ctx, s.llm, s.model)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return fail(modelMissing(s.model))
	}

	result.Stage = domain.StageBuildingPrompt
	prompt := req.Prompt()

	result.Stage = domain.StageAwaitingCompletion
	logger.Debug("requesting completion", "prompt_bytes", len(prompt))
	text, err := Complete(ctx, s.llm, s.model, domain.SystemPreamble, prompt)
	if err != nil {
		return fail(err)
	}

	result.Text = text
	result.Stage = domain.StageDisplaying
	result.Duration = time.Since(start)
	logger.Info("interaction completed", "response_bytes", len(text), "duration", result.Duration)
	return result, nil
}

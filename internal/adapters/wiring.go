package adapters

import (
	"fmt"

	"github.com/morgansundqvist/minicopilot/internal/config"
	"github.com/morgansundqvist/minicopilot/internal/ports"
)

// NewLLMFactory picks the provider implementation named in cfg.
func NewLLMFactory(cfg config.Config) (ports.LLMFactory, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return OpenAIFactory(cfg.BaseURL), nil
	case config.ProviderDeepSeek:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return OpenAIFactory(cfg.BaseURL), nil
	case config.ProviderMock:
		return MockFactory(cfg.Model), nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}

// NewSecretStore looks in the environment, then the dotenv file, then the
// YAML secrets file.
func NewSecretStore(cfg config.Config) (ports.SecretStore, error) {
	chain := ChainSecretStore{NewEnvSecretStore()}
	if cfg.DotenvFile != "" {
		dotenv, err := NewDotenvSecretStore(cfg.DotenvFile)
		if err != nil {
			return nil, err
		}
		chain = append(chain, dotenv)
	}
	if cfg.SecretsFile != "" {
		secrets, err := NewYAMLSecretStore(cfg.SecretsFile)
		if err != nil {
			return nil, err
		}
		chain = append(chain, secrets)
	}
	return chain, nil
}

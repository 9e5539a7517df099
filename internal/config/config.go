// Package config loads minicopilot settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProvider    = "openai"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultSecretName  = "OPENAI_API_KEY"
	DefaultSecretsFile = ".streamlit/secrets.yaml"
	DefaultDotenvFile  = ".env"
	DefaultPort        = "3000"
	DefaultLogLevel    = "info"
)

const (
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderMock     = "mock"
)

type Config struct {
	Provider    string `yaml:"provider,omitempty"`
	Model       string `yaml:"model,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	SecretName  string `yaml:"secret_name,omitempty"`
	SecretsFile string `yaml:"secrets_file,omitempty"`
	DotenvFile  string `yaml:"dotenv_file,omitempty"`
	Port        string `yaml:"port,omitempty"`
	LogLevel    string `yaml:"log_level,omitempty"`
}

func New() Config {
	return Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		SecretName:  DefaultSecretName,
		SecretsFile: DefaultSecretsFile,
		DotenvFile:  DefaultDotenvFile,
		Port:        DefaultPort,
		LogLevel:    DefaultLogLevel,
	}
}

// Load starts from defaults, applies path (if non-empty and present) and
// then the environment. The result is validated.
func Load(path string) (Config, error) {
	return LoadFrom(New(), path)
}

// LoadFrom is Load with caller-supplied defaults in place of New().
func LoadFrom(base Config, path string) (Config, error) {
	cfg := base
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
		default:
			var fileCfg Config
			if err := yaml.Unmarshal(data, &fileCfg); err != nil {
				return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
			}
			cfg.merge(fileCfg)
		}
	}
	cfg.applyEnv()
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Provider, o.Provider)
	set(&c.Model, o.Model)
	set(&c.BaseURL, o.BaseURL)
	set(&c.SecretName, o.SecretName)
	set(&c.SecretsFile, o.SecretsFile)
	set(&c.DotenvFile, o.DotenvFile)
	set(&c.Port, o.Port)
	set(&c.LogLevel, o.LogLevel)
}

func (c *Config) applyEnv() {
	c.merge(Config{
		Provider:    os.Getenv("COPILOT_PROVIDER"),
		Model:       os.Getenv("COPILOT_MODEL"),
		BaseURL:     os.Getenv("OPENAI_BASE_URL"),
		SecretsFile: os.Getenv("COPILOT_SECRETS_FILE"),
		Port:        os.Getenv("PORT"),
		LogLevel:    os.Getenv("COPILOT_LOG_LEVEL"),
	})
}

func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderMock:
	case ProviderDeepSeek:
		// DeepSeek only speaks the OpenAI protocol through its own endpoint.
		if c.BaseURL == "" {
			return fmt.Errorf("provider %s requires base_url (OpenAI-compatible endpoint)", c.Provider)
		}
	default:
		return fmt.Errorf("provider %s not supported", c.Provider)
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("model is required")
	}
	if strings.TrimSpace(c.SecretName) == "" {
		return errors.New("secret_name is required")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return level, nil
}

// Logger builds the process-wide text logger writing to stderr.
func (c Config) Logger() *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

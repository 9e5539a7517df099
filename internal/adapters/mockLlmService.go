package adapters

import (
	"context"
	"strings"

	"github.com/morgansundqvist/minicopilot/internal/domain"
	"github.com/morgansundqvist/minicopilot/internal/ports"
)

// MockLLMService answers locally without calling any provider. Useful for
// trying the form without an account.
type MockLLMService struct {
	Models []string
}

func NewMockLLMService(models ...string) *MockLLMService {
	if len(models) == 0 {
		models = []string{domain.DefaultModel}
	}
	return &MockLLMService{Models: models}
}

// MockFactory ignores the key and hands out a MockLLMService.
func MockFactory(models ...string) ports.LLMFactory {
	return func(string) (ports.LLMService, error) {
		return NewMockLLMService(models...), nil
	}
}

func (m *MockLLMService) ListModels(_ context.Context) ([]string, error) {
	return append([]string(nil), m.Models...), nil
}

func (m *MockLLMService) Complete(_ context.Context, input domain.LLMInput) (string, error) {
	var sb strings.Builder
	sb.WriteString("**Mock response** from `")
	sb.WriteString(input.Model)
	sb.WriteString("`.\n\nYou asked:\n\n```\n")
	sb.WriteString(input.UserMessage)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}

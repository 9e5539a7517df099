package adapters

import (
	"strings"

	"github.com/morgansundqvist/minicopilot/internal/ports"
)

// ChainSecretStore asks each store in order and returns the first hit.
type ChainSecretStore []ports.SecretStore

func (c ChainSecretStore) Secret(name string) (string, bool) {
	for _, s := range c {
		if s == nil {
			continue
		}
		if v, ok := s.Secret(name); ok {
			return v, true
		}
	}
	return "", false
}

// StaticSecretStore is an in-memory store, handy for flags and tests.
type StaticSecretStore map[string]string

func (s StaticSecretStore) Secret(name string) (string, bool) {
	v, ok := s[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

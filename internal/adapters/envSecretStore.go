package adapters

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvSecretStore reads secrets from the process environment.
type EnvSecretStore struct{}

func NewEnvSecretStore() *EnvSecretStore {
	return &EnvSecretStore{}
}

func (EnvSecretStore) Secret(name string) (string, bool) {
	v, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// DotenvSecretStore reads secrets from .env files without touching the
// process environment.
type DotenvSecretStore struct {
	values map[string]string
}

// NewDotenvSecretStore parses the given files. Files that do not exist are skipped.
func NewDotenvSecretStore(filePaths ...string) (*DotenvSecretStore, error) {
	values := make(map[string]string)
	for _, p := range filePaths {
		if _, err := os.Stat(p); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error reading dotenv file %s: %w", p, err)
		}
		parsed, err := godotenv.Read(p)
		if err != nil {
			return nil, fmt.Errorf("error parsing dotenv file %s: %w", p, err)
		}
		for k, v := range parsed {
			if _, exists := values[k]; !exists {
				values[k] = v
			}
		}
	}
	return &DotenvSecretStore{values: values}, nil
}

func (s *DotenvSecretStore) Secret(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

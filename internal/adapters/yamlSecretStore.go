package adapters

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLSecretStore reads a flat "NAME: value" secrets file, the YAML
// counterpart of a hosted app's secrets file.
type YAMLSecretStore struct {
	values map[string]string
}

// NewYAMLSecretStore loads filePath. A missing file yields an empty store.
func NewYAMLSecretStore(filePath string) (*YAMLSecretStore, error) {
	store := &YAMLSecretStore{values: make(map[string]string)}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("error reading secrets file %s: %w", filePath, err)
	}
	if len(data) == 0 {
		return store, nil
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing secrets file %s: %w", filePath, err)
	}
	for k, node := range raw {
		// Unquoted numbers and booleans keep their literal text.
		// Nested tables are not secrets we look up.
		if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
			continue
		}
		store.values[k] = node.Value
	}
	return store, nil
}

func (s *YAMLSecretStore) Secret(name string) (string, bool) {
	v, ok := s.values[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

package adapters

import (
	"fmt"
	"io"
	"os"

	"github.com/morgansundqvist/minicopilot/internal/ports"
)

// LocalFileReader reads the code a user wants help with. The path "-"
// means standard input.
type LocalFileReader struct {
	Stdin io.Reader
}

var _ ports.FileReader = (*LocalFileReader)(nil)

func (r *LocalFileReader) ReadFileContent(filePath string) (string, error) {
	if filePath == "-" {
		if r.Stdin == nil {
			return "", fmt.Errorf("no standard input available")
		}
		data, err := io.ReadAll(r.Stdin)
		if err != nil {
			return "", fmt.Errorf("error reading standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	return string(data), nil
}

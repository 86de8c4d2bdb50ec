package loader

import (
	"errors"
	"fmt"
	"os"
)

func loadFile(path string) ([]byte, error) {
	if path == "" || path == "." {
		return nil, errors.New("openapi loader: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", path, err)
	}
	return data, nil
}

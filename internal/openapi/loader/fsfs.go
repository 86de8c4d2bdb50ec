package loader

import (
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(files fs.FS, name string) ([]byte, error) {
	if files == nil {
		return nil, errors.New("openapi loader: filesystem is not configured")
	}
	if name == "" {
		return nil, errors.New("openapi loader: fs path is required")
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("openapi loader: read %s: %w", name, err)
	}
	return data, nil
}

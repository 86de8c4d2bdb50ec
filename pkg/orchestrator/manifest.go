package orchestrator

import (
	"errors"
	"fmt"
	"io/fs"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

// ParseManifest decodes a YAML or JSON theme manifest.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("orchestrator: decode theme manifest: %w", err)
	}
	if raw.Name == "" {
		return nil, errors.New("orchestrator: theme manifest has no name")
	}
	m := &theme.Manifest{
		Name:      raw.Name,
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets:    theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		m.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, v := range raw.Variants {
			m.Variants[name] = theme.Variant{
				Tokens:    v.Tokens,
				Templates: v.Templates,
				Assets:    theme.Assets{Prefix: v.Assets.Prefix, Files: v.Assets.Files},
			}
		}
	}
	return m, nil
}

// LoadManifest reads and decodes the manifest at path in fsys.
func LoadManifest(fsys fs.FS, path string) (*theme.Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read theme manifest: %w", err)
	}
	return ParseManifest(data)
}

package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// ErrNoForms reports a file with neither a forms map nor top-level fields.
var ErrNoForms = errors.New("defines no forms")

// LoadFS walks fsys and parses every .json, .yaml and .yml file. Files that
// define no forms, such as a theme manifest kept alongside, are skipped. A nil
// fsys yields an empty store. Form ids must be unique across files.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{forms: make(map[string]Document)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isSchemaFile(name) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", name, err)
		}
		docs, err := Parse(data, name)
		if errors.Is(err, ErrNoForms) {
			return nil
		}
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if prev, exists := store.forms[doc.ID]; exists {
				return fmt.Errorf("schema: duplicate form %q (files %s and %s)", doc.ID, prev.Source, name)
			}
			store.forms[doc.ID] = doc
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

type formFile struct {
	model.Form `yaml:",inline"`
	Rules      map[string]Rules `json:"rules,omitempty" yaml:"rules,omitempty"`
}

type documentFile struct {
	Forms    map[string]formFile `json:"forms,omitempty" yaml:"forms,omitempty"`
	formFile `yaml:",inline"`
}

// Parse decodes one schema file. JSON is detected by extension or a leading
// "{"; anything else is read as YAML. source names the file in errors and
// supplies the id of a top-level form that sets none.
func Parse(data []byte, source string) ([]Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	var raw documentFile
	if strings.EqualFold(path.Ext(source), ".json") || trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, fmt.Errorf("schema: parse %s: %w", source, err)
		}
	} else if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", source, err)
	}

	var docs []Document
	if len(raw.Forms) == 0 {
		if len(raw.Fields) == 0 {
			return nil, fmt.Errorf("schema: file %s %w", source, ErrNoForms)
		}
		id := strings.TrimSpace(raw.ID)
		if id == "" {
			id = strings.TrimSuffix(path.Base(source), path.Ext(source))
		}
		doc, err := normalise(id, source, raw.formFile)
		if err != nil {
			return nil, err
		}
		return append(docs, doc), nil
	}
	if len(raw.Fields) > 0 {
		return nil, fmt.Errorf("schema: file %s mixes top-level fields with forms", source)
	}

	for _, key := range sortedKeys(raw.Forms) {
		id := strings.TrimSpace(key)
		if id == "" {
			return nil, fmt.Errorf("schema: file %s defines an empty form id", source)
		}
		doc, err := normalise(id, source, raw.Forms[key])
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func normalise(id, source string, raw formFile) (Document, error) {
	f := raw.Form
	f.ID = id

	names := make(map[string]bool)
	for _, field := range f.AllFields() {
		if field.Type.DataBearing() {
			names[field.Name] = true
		}
	}
	rules := make(map[string]Rules, len(raw.Rules))
	for name, r := range raw.Rules {
		if !names[name] {
			return Document{}, fmt.Errorf("schema: form %q (file %s) declares rules for unknown field %q", id, source, name)
		}
		if err := r.check(); err != nil {
			return Document{}, fmt.Errorf("schema: form %q (file %s) field %q: %w", id, source, name, err)
		}
		rules[name] = r
	}
	return Document{ID: id, Source: source, Form: f, Rules: rules}, nil
}

func isSchemaFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func sortedKeys(m map[string]formFile) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

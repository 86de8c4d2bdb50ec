package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Transformer rewrites descriptors before the form is built. Implementations
// can relabel fields, rename them or inject defaults.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Chain runs transformers in order, stopping at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, form *model.Form) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, form); err != nil {
				return err
			}
		}
		return nil
	})
}

// JSONPresetTransformer applies declarative overrides loaded from JSON. The
// document patches the form and its fields, addressed by name (or id for
// fields without one):
//
//	{
//	  "label": "Create account",
//	  "initialValues": {"plan": "pro"},
//	  "fields": {
//	    "email": {"label": "Work email", "placeholder": "you@company.com"},
//	    "bio": {"rename": "about", "disabled": true}
//	  }
//	}
type JSONPresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Label         string                `json:"label"`
	TestID        string                `json:"testId"`
	InitialValues map[string]any        `json:"initialValues"`
	Fields        map[string]fieldPatch `json:"fields"`
}

type fieldPatch struct {
	Label         string `json:"label"`
	Heading       string `json:"heading"`
	Placeholder   string `json:"placeholder"`
	HelperMessage string `json:"helperMessage"`
	TestID        string `json:"testId"`
	Rename        string `json:"rename"`
	Required      *bool  `json:"required"`
	Disabled      *bool  `json:"disabled"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document presetDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the patches. Patching a field the form does not declare
// is an error.
func (t *JSONPresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("json preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := t.document
	if doc.Label != "" {
		form.Label = doc.Label
	}
	if doc.TestID != "" {
		form.TestID = doc.TestID
	}
	if len(doc.InitialValues) > 0 {
		if form.InitialValues == nil {
			form.InitialValues = make(map[string]any, len(doc.InitialValues))
		}
		for k, v := range doc.InitialValues {
			form.InitialValues[k] = v
		}
	}

	seen := make(map[string]bool, len(doc.Fields))
	renames := make(map[string]string)
	*form = form.MapFields(func(field model.Field) model.Field {
		key := field.Name
		if key == "" {
			key = field.Key()
		}
		patch, ok := doc.Fields[key]
		if !ok {
			return field
		}
		seen[key] = true
		if to := strings.TrimSpace(patch.Rename); to != "" && field.Name != "" {
			renames[field.Name] = to
		}
		return applyFieldPatch(field, patch)
	})

	var missing []string
	for key := range doc.Fields {
		if !seen[key] {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("json preset transformer: fields not found: %s", strings.Join(missing, ", "))
	}

	for from, to := range renames {
		if v, ok := form.InitialValues[from]; ok {
			delete(form.InitialValues, from)
			form.InitialValues[to] = v
		}
	}
	return nil
}

func applyFieldPatch(field model.Field, patch fieldPatch) model.Field {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Heading != "" {
		field.Heading = patch.Heading
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.HelperMessage != "" {
		field.HelperMessage = patch.HelperMessage
	}
	if patch.TestID != "" {
		field.TestID = patch.TestID
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Disabled != nil {
		field.Disabled = *patch.Disabled
	}
	if to := strings.TrimSpace(patch.Rename); to != "" && field.Name != "" {
		field.Name = to
	}
	return field
}

package testsupport

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	pkgopenapi "github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/validation"
)

// UpdateGoldens reports whether golden files should be rewritten.
func UpdateGoldens() bool {
	return os.Getenv("UPDATE_GOLDENS") != ""
}

// LoadDocument reads an OpenAPI fixture into a Document backed by a file
// source.
func LoadDocument(t *testing.T, path string) pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (pkgopenapi.Document, error) {
	if path == "" {
		return pkgopenapi.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// SampleConfig returns a small form exercising a header, a row group, text,
// select, number and toggle controls with one submit action.
func SampleConfig() form.Config {
	max := 10.0
	min := 1.0
	return form.Config{Form: model.Form{
		TestID: "sample",
		Label:  "Sample",
		Fields: []model.Entry{
			model.Single(model.Field{ID: "profile", Type: model.FieldTypeHeader, Heading: "Profile"}),
			model.Row(
				model.Field{Name: "firstName", Type: model.FieldTypeText, Label: "First name"},
				model.Field{Name: "lastName", Type: model.FieldTypeText, Label: "Last name"},
			),
			model.Single(model.Field{
				Name:     "email",
				Type:     model.FieldTypeEmail,
				Label:    "Email",
				Required: true,
				Validate: validation.Compose(validation.Required(""), validation.Email("")),
			}),
			model.Single(model.Field{
				Name:  "role",
				Type:  model.FieldTypeSelect,
				Label: "Role",
				SelectOptions: &model.SelectOptions{Single: true, Items: []model.MenuOption{
					{Label: "Admin", Value: "admin"},
					{Label: "Editor", Value: "editor"},
				}},
			}),
			model.Single(model.Field{
				Name:          "seats",
				Type:          model.FieldTypeNumber,
				Label:         "Seats",
				NumberOptions: &model.NumberOptions{Min: &min, Max: &max, Step: 1},
			}),
			model.Single(model.Field{Name: "terms", Type: model.FieldTypeCheckbox, Label: "I accept the terms"}),
		},
		Actions: []model.Action{{Title: "Save", Type: model.ActionSubmit, LoadingText: "Saving..."}},
	}}
}

// WriteMaybeGolden writes data to path when UPDATE_GOLDENS is set and reports
// whether it did, in which case the test should return early.
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if !UpdateGoldens() {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any, opts ...cmp.Option) string {
	return cmp.Diff(want, got, opts...)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput runs a render function that writes to an io.Writer
// and returns both the returned string and the written contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

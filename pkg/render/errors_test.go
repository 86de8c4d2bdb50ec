package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

func errorForm() model.Form {
	return model.Form{Fields: []model.Entry{
		model.Single(model.Field{Name: "name", Type: model.FieldTypeText}),
		model.Row(
			model.Field{Name: "owner.email", Type: model.FieldTypeEmail},
			model.Field{Name: "owner.phone", Type: model.FieldTypeTel},
		),
		model.Single(model.Field{Name: "tags", Type: model.FieldTypeSelect}),
		model.Single(model.Field{Name: "owner", Type: model.FieldTypeText}),
		model.Single(model.Field{Name: "intro", Type: model.FieldTypeHeader}),
	}}
}

func TestMapErrorPayload_PathVariants(t *testing.T) {
	payload := map[string][]string{
		"/body/name":                 {"Name is required", " Name is required "},
		"body.owner.email":           {"Email invalid"},
		"$.body.tags[0]":             {"Tags must be unique"},
		"request.payload.owner":      {"Owner missing"},
		"non_field_errors":           {"Form level error"},
		"body/owner/phone/~1number":  {"Phone malformed"},
		"request/body/unknown-field": {"Should fall back to form errors"},
		"intro":                      {"Headers carry no value"},
		"":                           {"Unscoped form error", "  "},
	}

	mapped := render.MapErrorPayload(errorForm(), payload)

	wantFields := map[string][]string{
		"name":        {"Name is required"},
		"owner.email": {"Email invalid"},
		"tags":        {"Tags must be unique"},
		"owner":       {"Owner missing"},
		"owner.phone": {"Phone malformed"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Headers carry no value", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(errorForm(), nil)
	if !mapped.Empty() {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	if diff := cmp.Diff([]string{"First", "Second", "third"}, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ValuesAndErrorsReachTheEngine(t *testing.T) {
	f, err := form.New(form.Config{Form: errorForm()})
	if err != nil {
		t.Fatalf("form.New: %v", err)
	}
	formLevel := render.Apply(f, render.RenderOptions{
		Values: map[string]any{"name": "Ada", "owner.email": "ada@example.com"},
		Errors: map[string][]string{
			"name":  {"Taken", "Too short"},
			"form":  {"Try again later"},
			"other": {"Unknown"},
		},
	})

	if got := f.Engine().Value("name"); got != "Ada" {
		t.Fatalf("expected pre-populated value, got %v", got)
	}
	if got := f.Engine().Value("owner.email"); got != "ada@example.com" {
		t.Fatalf("expected dotted value, got %v", got)
	}
	if got := f.Engine().Error("name"); got != "Taken; Too short" {
		t.Fatalf("unexpected field error %q", got)
	}
	if !f.Engine().IsTouched("name") {
		t.Fatalf("server errors must mark the field touched")
	}
	if node := f.Render().ByTestID("dynamic-form--error-message"); node == nil || node.TextContent() != "Taken; Too short" {
		t.Fatalf("expected rendered server error")
	}
	if diff := cmp.Diff([]string{"Try again later", "Unknown"}, formLevel, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form-level mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorFeedback_EscapesMessages(t *testing.T) {
	entry := render.ErrorFeedback("Could not save", []string{"a < b", "a < b", ""})
	want := model.FeedbackEntry{
		Kind:        model.FeedbackError,
		Visible:     true,
		Title:       "Could not save",
		Description: "<ul><li>a &lt; b</li></ul>",
	}
	if diff := cmp.Diff(want, entry); diff != "" {
		t.Fatalf("feedback mismatch (-want +got):\n%s", diff)
	}
}
